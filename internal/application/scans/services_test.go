package scans

import (
	"context"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerr "github.com/bryanwahyu/glowscan/internal/domain/scanerrors"
	domain "github.com/bryanwahyu/glowscan/internal/domain/scans"
)

const goodResponse = `{
  "product_name": "Oat Drink",
  "glow_score": "B",
  "vibe_check": "Pretty clean overall.",
  "red_flags": ["Guar Gum"],
  "suggested_swap": "Look for an oat drink with just oats, water and salt."
}`

var testImage = base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02})

type fakeAI struct {
	resp   string
	err    error
	called bool
}

func (f *fakeAI) Analyze(ctx context.Context, imageBase64, mimeType string) (string, error) {
	f.called = true
	return f.resp, f.err
}

type fakeRepo struct {
	mu      sync.Mutex
	saved   []*domain.Scan
	saveErr error
	recent  []*domain.Scan
	listErr error
	savedCh chan *domain.Scan
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{savedCh: make(chan *domain.Scan, 1)}
}

func (f *fakeRepo) Save(ctx context.Context, s *domain.Scan) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, s)
	f.savedCh <- s
	return nil
}

func (f *fakeRepo) Recent(ctx context.Context, limit int) ([]*domain.Scan, error) {
	return f.recent, f.listErr
}

func (f *fakeRepo) savedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

type fakeImages struct {
	url string
	err error
}

func (f *fakeImages) UploadBytes(ctx context.Context, data []byte, key, contentType string) (string, error) {
	return f.url, f.err
}

type fakeErrors struct {
	ch chan *domerr.ScanError
}

func newFakeErrors() *fakeErrors {
	return &fakeErrors{ch: make(chan *domerr.ScanError, 4)}
}

func (f *fakeErrors) Save(ctx context.Context, e *domerr.ScanError) error {
	f.ch <- e
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func waitScan(t *testing.T, ch chan *domain.Scan) *domain.Scan {
	t.Helper()
	select {
	case s := <-ch:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background save")
		return nil
	}
}

func waitScanError(t *testing.T, ch chan *domerr.ScanError) *domerr.ScanError {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for diagnostics entry")
		return nil
	}
}

func TestAnalyzeSuccessPersistsInBackground(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := &Service{
		Repo:   repo,
		Images: &fakeImages{url: "https://cdn.example.com/labels/x.jpg"},
		AI:     &fakeAI{resp: goodResponse},
		Clock:  fixedClock{t: now},
	}

	res, err := svc.Analyze(context.Background(), AnalyzeCommand{Image: testImage, MIMEType: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, "Oat Drink", res.ProductName)
	assert.Equal(t, domain.ScoreB, res.GlowScore)
	assert.Equal(t, []string{"Guar Gum"}, res.RedFlags)

	saved := waitScan(t, repo.savedCh)
	assert.Equal(t, res.ProductName, saved.ProductName)
	assert.Equal(t, res.GlowScore, saved.GlowScore)
	assert.Equal(t, "https://cdn.example.com/labels/x.jpg", saved.ImageURL)
	assert.Equal(t, now, saved.CreatedAt)

	_, err = uuid.Parse(string(saved.ID))
	assert.NoError(t, err)
}

func TestAnalyzeStoreFailureDoesNotAffectResult(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = errors.New("connection refused")
	errs := newFakeErrors()
	svc := &Service{
		Repo:   repo,
		Errors: errs,
		AI:     &fakeAI{resp: goodResponse},
		Clock:  fixedClock{t: time.Now()},
	}

	res, err := svc.Analyze(context.Background(), AnalyzeCommand{Image: testImage, MIMEType: "image/jpeg"})
	require.NoError(t, err)
	assert.Equal(t, domain.ScoreB, res.GlowScore)

	e := waitScanError(t, errs.ch)
	assert.Equal(t, "persist", e.Phase)
	assert.Contains(t, e.Message, "connection refused")
}

func TestAnalyzeUploadFailureStillSaves(t *testing.T) {
	repo := newFakeRepo()
	errs := newFakeErrors()
	svc := &Service{
		Repo:   repo,
		Errors: errs,
		Images: &fakeImages{err: errors.New("bucket gone")},
		AI:     &fakeAI{resp: goodResponse},
		Clock:  fixedClock{t: time.Now()},
	}

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{Image: testImage, MIMEType: "image/jpeg"})
	require.NoError(t, err)

	saved := waitScan(t, repo.savedCh)
	assert.Empty(t, saved.ImageURL)

	e := waitScanError(t, errs.ch)
	assert.Equal(t, "upload", e.Phase)
}

func TestAnalyzeInvalidScoreNotPersisted(t *testing.T) {
	repo := newFakeRepo()
	errs := newFakeErrors()
	raw := `{"glow_score": "E", "product_name": "Mystery Snack"}`
	svc := &Service{
		Repo:   repo,
		Errors: errs,
		AI:     &fakeAI{resp: raw},
		Clock:  fixedClock{t: time.Now()},
	}

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{Image: testImage, MIMEType: "image/jpeg"})
	require.ErrorIs(t, err, domain.ErrInvalidScore)

	e := waitScanError(t, errs.ch)
	assert.Equal(t, "analyze", e.Phase)
	assert.Equal(t, raw, e.RawOutput)
	assert.Zero(t, repo.savedCount())
}

func TestAnalyzeProviderError(t *testing.T) {
	errs := newFakeErrors()
	svc := &Service{
		Errors: errs,
		AI:     &fakeAI{err: errors.New("upstream exploded")},
		Clock:  fixedClock{t: time.Now()},
	}

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{Image: testImage, MIMEType: "image/jpeg"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream exploded")

	e := waitScanError(t, errs.ch)
	assert.Equal(t, "analyze", e.Phase)
}

func TestAnalyzeNotConfigured(t *testing.T) {
	svc := &Service{Clock: fixedClock{t: time.Now()}}

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{Image: testImage, MIMEType: "image/jpeg"})
	require.Error(t, err)
}

func TestAnalyzeRejectsBadIntakeBeforeAICall(t *testing.T) {
	ai := &fakeAI{resp: goodResponse}
	svc := &Service{AI: ai, Clock: fixedClock{t: time.Now()}}

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{})
	require.ErrorIs(t, err, domain.ErrNoImage)
	assert.False(t, ai.called)

	_, err = svc.Analyze(context.Background(), AnalyzeCommand{Image: testImage, MIMEType: "text/plain"})
	require.ErrorIs(t, err, domain.ErrUnsupportedImage)
	assert.False(t, ai.called)
}

func TestRecentDegradesToEmpty(t *testing.T) {
	// nil repo: history disabled
	svc := &Service{Clock: fixedClock{t: time.Now()}}
	list := svc.Recent(context.Background(), 10)
	require.NotNil(t, list)
	assert.Empty(t, list)

	// failing repo: logged, still empty
	repo := newFakeRepo()
	repo.listErr = errors.New("timeout")
	svc.Repo = repo
	list = svc.Recent(context.Background(), 10)
	require.NotNil(t, list)
	assert.Empty(t, list)
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	repo := newFakeRepo()
	repo.recent = []*domain.Scan{
		{ID: "b", GlowScore: domain.ScoreA},
		{ID: "a", GlowScore: domain.ScoreD},
	}
	svc := &Service{Repo: repo, Clock: fixedClock{t: time.Now()}}

	list := svc.Recent(context.Background(), 2)
	require.Len(t, list, 2)
	assert.Equal(t, domain.ScanID("b"), list[0].ID)
}
