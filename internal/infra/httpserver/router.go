package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appscans "github.com/bryanwahyu/glowscan/internal/application/scans"
	domai "github.com/bryanwahyu/glowscan/internal/domain/ai"
	domain "github.com/bryanwahyu/glowscan/internal/domain/scans"
	"github.com/bryanwahyu/glowscan/internal/middleware"
)

// analyzeTimeout is the ceiling for one whole analyze request, AI call included.
const analyzeTimeout = 60 * time.Second

type Router struct {
	scansSvc *appscans.Service
}

func NewRouter(scansSvc *appscans.Service, checkers map[string]middleware.HealthChecker, allowedOrigins []string) http.Handler {
	r := &Router{scansSvc: scansSvc}
	mux := chi.NewRouter()

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/scans/recent", r.wrap(r.handleRecent))
		rt.Get("/meta/scores", r.wrap(r.handleScoreMeta))
		rt.Get("/meta/additives", r.wrap(r.handleAdditives))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		middleware.IncrementRequests()
		if err := h(w, req); err != nil {
			middleware.IncrementFailed()
			switch {
			case errors.Is(err, domain.ErrNoImage):
				writeError(w, http.StatusBadRequest, err)
			case errors.Is(err, domai.ErrQuotaExceeded):
				writeError(w, http.StatusTooManyRequests, err)
			default:
				// provider, validation and intake failures all surface as
				// a 500 with the human-readable message forwarded as-is
				writeError(w, http.StatusInternalServerError, err)
			}
			return
		}
		middleware.IncrementSuccess()
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /api/analyze
// Body: {"image": "<base64>", "mimeType": "image/jpeg", "filename": "label.jpg"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Image    string `json:"image"`
		MIMEType string `json:"mimeType"`
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return domain.ErrNoImage
	}

	ctx, cancel := context.WithTimeout(req.Context(), analyzeTimeout)
	defer cancel()

	result, err := r.scansSvc.Analyze(ctx, appscans.AnalyzeCommand{
		Image:    body.Image,
		MIMEType: body.MIMEType,
		Filename: body.Filename,
	})
	if err != nil {
		return err
	}

	return writeJSON(w, result)
}

// GET /api/scans/recent?limit=10
func (r *Router) handleRecent(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list := r.scansSvc.Recent(req.Context(), limit)
	return writeJSON(w, list)
}

// GET /api/meta/scores
func (r *Router) handleScoreMeta(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, domain.ScoreMetadata)
}

// GET /api/meta/additives
func (r *Router) handleAdditives(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, domain.AdditiveGlossary)
}
