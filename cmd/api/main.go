package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/bryanwahyu/glowscan/internal/application"
	appscans "github.com/bryanwahyu/glowscan/internal/application/scans"
	"github.com/bryanwahyu/glowscan/internal/config"
	domerr "github.com/bryanwahyu/glowscan/internal/domain/scanerrors"
	domain "github.com/bryanwahyu/glowscan/internal/domain/scans"
	aiclient "github.com/bryanwahyu/glowscan/internal/infra/ai/openai"
	mysqlp "github.com/bryanwahyu/glowscan/internal/infra/db/mysql"
	postgresp "github.com/bryanwahyu/glowscan/internal/infra/db/postgres"
	"github.com/bryanwahyu/glowscan/internal/infra/httpserver"
	minioStore "github.com/bryanwahyu/glowscan/internal/infra/storage"
	"github.com/bryanwahyu/glowscan/internal/middleware"
)

func main() {
	// .env kalau ada, untuk development lokal
	_ = godotenv.Load()

	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()
	checkers := map[string]middleware.HealthChecker{}

	// Storage is best-effort end to end: a missing database or bucket only
	// disables history, analysis itself keeps working.
	var repo domain.Repository
	var errRepo domerr.Repository
	if cfg.HasDatabase() {
		var db *sql.DB
		var derr error
		switch cfg.Database.Driver {
		case "postgres":
			db, derr = postgresp.Connect(ctx, cfg.PostgresDSN())
			if derr == nil {
				repo = postgresp.NewScanRepository(db)
				errRepo = postgresp.NewScanErrorRepository(db)
			}
		default:
			db, derr = mysqlp.Connect(ctx, cfg.MySQLDSN())
			if derr == nil {
				repo = mysqlp.NewScanRepository(db)
				errRepo = mysqlp.NewScanErrorRepository(db)
			}
		}
		if derr != nil {
			log.Warnf("database unavailable, scan history disabled: %v", derr)
		} else {
			defer db.Close()
			checkers["database"] = &middleware.DatabaseHealthChecker{DB: db}
		}
	} else {
		log.Warn("database not configured, scan history disabled")
	}

	var images domain.ImageStore
	if cfg.HasMinio() {
		store, merr := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if merr != nil {
			log.Warnf("object storage unavailable, image upload disabled: %v", merr)
		} else {
			images = store
			checkers["storage"] = middleware.CheckerFunc(store.Check)
		}
	} else {
		log.Warn("object storage not configured, image upload disabled")
	}

	svc := &appscans.Service{
		Repo:   repo,
		Errors: errRepo,
		Images: images,
		Clock:  application.SystemClock{},
	}
	ai, aerr := aiclient.NewClient(cfg.AI.APIKey, cfg.AI.Model)
	if aerr != nil {
		// surfaced per request as a config error instead of crashing
		log.Warnf("AI client not configured: %v", aerr)
	} else {
		svc.AI = ai
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	if capacity := cfg.Server.RateLimit.Capacity; capacity > 0 {
		refill := cfg.Server.RateLimit.RefillRate
		if refill <= 0 {
			refill = 1
		}
		mux.Use(middleware.RateLimitMiddleware(capacity, refill))
	}
	mux.Mount("/", httpserver.NewRouter(svc, checkers, cfg.Server.AllowedOrigins))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second, // must outlive the 60s analyze ceiling
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Infof("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}
