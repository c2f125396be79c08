package httpserver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/glowscan/internal/application"
	appscans "github.com/bryanwahyu/glowscan/internal/application/scans"
	domai "github.com/bryanwahyu/glowscan/internal/domain/ai"
)

type stubAI struct {
	resp string
	err  error
}

func (s *stubAI) Analyze(ctx context.Context, imageBase64, mimeType string) (string, error) {
	return s.resp, s.err
}

func newTestServer(ai domai.Client) *httptest.Server {
	svc := &appscans.Service{
		AI:    ai,
		Clock: application.SystemClock{},
	}
	return httptest.NewServer(NewRouter(svc, nil, nil))
}

var smallJPEG = base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10})

func postAnalyze(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestAnalyzeEndpointSuccess(t *testing.T) {
	// fenced output exercises normalization end to end
	srv := newTestServer(&stubAI{resp: "```json\n" + `{
  "product_name": "Berry Bar",
  "glow_score": "B",
  "vibe_check": "Mostly fruit, one gum.",
  "red_flags": ["Xanthan Gum"],
  "suggested_swap": "A bar with dates and nuts only."
}` + "\n```"})
	defer srv.Close()

	// no mimeType on purpose: intake defaults to JPEG
	resp, body := postAnalyze(t, srv, `{"image": "`+smallJPEG+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, field := range []string{"product_name", "glow_score", "vibe_check", "red_flags", "suggested_swap"} {
		assert.Contains(t, body, field)
	}
	assert.Contains(t, []any{"A", "B", "C", "D"}, body["glow_score"])
	assert.Equal(t, []any{"Xanthan Gum"}, body["red_flags"])
}

func TestAnalyzeEndpointMissingImage(t *testing.T) {
	srv := newTestServer(&stubAI{})
	defer srv.Close()

	resp, body := postAnalyze(t, srv, `{}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No image data provided", body["error"])
}

func TestAnalyzeEndpointMalformedBody(t *testing.T) {
	srv := newTestServer(&stubAI{})
	defer srv.Close()

	resp, body := postAnalyze(t, srv, `{"image":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No image data provided", body["error"])
}

func TestAnalyzeEndpointProviderFailure(t *testing.T) {
	srv := newTestServer(&stubAI{err: errors.New("model unavailable")})
	defer srv.Close()

	resp, body := postAnalyze(t, srv, `{"image": "`+smallJPEG+`", "mimeType": "image/jpeg"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body["error"], "model unavailable")
}

func TestAnalyzeEndpointInvalidScore(t *testing.T) {
	srv := newTestServer(&stubAI{resp: `{"glow_score": "E"}`})
	defer srv.Close()

	resp, body := postAnalyze(t, srv, `{"image": "`+smallJPEG+`"}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body["error"], "Glow Score")
}

func TestAnalyzeEndpointQuotaExceeded(t *testing.T) {
	srv := newTestServer(&stubAI{err: domai.ErrQuotaExceeded})
	defer srv.Close()

	resp, _ := postAnalyze(t, srv, `{"image": "`+smallJPEG+`"}`)
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRecentEndpointEmptyWithoutStore(t *testing.T) {
	srv := newTestServer(&stubAI{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/scans/recent?limit=5")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Empty(t, list)
}

func TestScoreMetaEndpoint(t *testing.T) {
	srv := newTestServer(&stubAI{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/meta/scores")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var meta map[string]map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&meta))
	require.Len(t, meta, 4)
	assert.Equal(t, "Clean", meta["A"]["label"])
	assert.Equal(t, "Avoid", meta["D"]["label"])
}

func TestAdditiveGlossaryEndpoint(t *testing.T) {
	srv := newTestServer(&stubAI{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/meta/additives")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var glossary map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&glossary))
	assert.NotEmpty(t, glossary["Carrageenan"])
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubAI{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "healthy", health["status"])
}
