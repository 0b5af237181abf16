// Package main is the entry point for the RV Companion API server.
// Its sole responsibility is wiring dependencies together and starting the
// server. No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/rv-companion/internal/cache"
	"github.com/pkordes/rv-companion/internal/config"
	"github.com/pkordes/rv-companion/internal/handler"
	"github.com/pkordes/rv-companion/internal/middleware"
	"github.com/pkordes/rv-companion/internal/repo"
	"github.com/pkordes/rv-companion/internal/service"
	"github.com/pkordes/rv-companion/internal/upstream"
	"github.com/pkordes/rv-companion/migrations"
)

// maxRequestBody caps incoming request bodies. The API is read-only, so
// anything beyond a few KB of headers and query strings is suspect.
const maxRequestBody = 64 << 10

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Diagnostics store (optional) --------------------------------------
	// Without DATABASE_URL the server runs fine; decode failures are only
	// logged, not persisted, and the diagnostics endpoint reports 404.
	var diagRepo repo.DiagnosticRepo
	if cfg.DatabaseURL != "" {
		if err := migrate(cfg.DatabaseURL); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		slog.Info("database connection established")

		diagRepo = repo.NewDiagnosticRepo(pool)
	} else {
		slog.Info("DATABASE_URL not set; decode-failure persistence disabled")
	}

	// --- Cache (optional) ---------------------------------------------------
	responseCache := cache.New(cache.Connect(cfg.RedisAddr), cfg.CacheTTL)
	if cfg.RedisAddr == "" {
		slog.Info("REDIS_ADDR not set; response caching disabled")
	}

	// --- Upstream client and services ---------------------------------------
	client := upstream.NewClient(cfg.UpstreamBaseURL)

	itinerarySvc := service.NewItineraryService(client, responseCache, diagRepo)
	checklistSvc := service.NewChecklistService(client, responseCache, diagRepo)
	parkSvc := service.NewParkService(client, responseCache, diagRepo)

	var diagSvc handler.DiagnosticServicer
	if diagRepo != nil {
		svc := service.NewDiagnosticService(diagRepo)
		diagSvc = svc
		go pruneLoop(svc)
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxRequestBody))

	srv := handler.NewServer(itinerarySvc, checklistSvc, parkSvc, diagSvc)
	r.Mount("/", srv.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "upstream", cfg.UpstreamBaseURL)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// Decode-failure records are kept for 30 days; the raw bodies add up.
const failureRetention = 30 * 24 * time.Hour

// pruneLoop deletes expired decode-failure records once a day.
func pruneLoop(svc *service.DiagnosticService) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed, err := svc.Prune(context.Background(), failureRetention)
		if err != nil {
			slog.Error("pruning decode failures", "error", err)
			continue
		}
		if removed > 0 {
			slog.Info("pruned decode failures", "removed", removed)
		}
	}
}

// migrate applies any pending schema migrations using the embedded SQL files.
func migrate(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
