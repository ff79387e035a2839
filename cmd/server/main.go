package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/remaimber-it/imagequiz/internal/api"
	"github.com/remaimber-it/imagequiz/internal/asset"
	"github.com/remaimber-it/imagequiz/internal/infrastructure/config"
	"github.com/remaimber-it/imagequiz/internal/service"
	"github.com/remaimber-it/imagequiz/internal/store"
	"github.com/remaimber-it/imagequiz/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	bank := cfg.Bank()
	diskLoader := asset.NewFSLoader(os.DirFS(cfg.QuestionsDir), os.DirFS(cfg.AnswersDir))

	audit(ctx, cfg, db, diskLoader, logger)

	opts := service.Options{
		Config:      cfg.Session(),
		Labels:      service.LabelsFor(cfg.Locale),
		LoadTimeout: cfg.LoadTimeout,
	}
	sessionLoader := asset.NewRecordingLoader(diskLoader, db, store.SourceSession, logger)
	handler := api.NewHandler(db, bank, sessionLoader, opts, cfg.Locale, logger)

	// ── Routes ──────────────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(api.Logging(logger))
	r.Use(api.CORS([]string{"*"}))

	api.RegisterRoutes(r, handler)
	api.MountAssets(r, bank, cfg.QuestionsDir, cfg.AnswersDir)
	r.Handle("/*", web.Handler())

	// ── Server ──────────────────────────────────────────────────────
	// No WriteTimeout: quiz sockets stay open for the whole session.
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"address", cfg.ServerAddress,
			"bank_size", bank.Size,
			"session_size", cfg.SessionSize,
			"locale", cfg.Locale,
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}
}

// audit replaces the previous audit's findings with a fresh pass over every
// question and answer on disk. Missing assets are logged, not fatal.
func audit(ctx context.Context, cfg *config.Config, db *store.SQLiteStore, loader asset.Loader, logger *slog.Logger) {
	if _, err := db.ClearAssetFailures(ctx, store.SourceAudit); err != nil {
		logger.Error("failed to clear audit failures", "error", err)
	}

	start := time.Now()
	report := asset.Audit(ctx, cfg.Bank(), loader, db, cfg.AuditWorkers, logger)
	for _, f := range report.Missing {
		logger.Warn("asset unavailable", "kind", string(f.Kind), "question_id", f.QuestionID, "path", f.Path, "reason", f.Reason)
	}
	logger.Info("asset audit finished",
		"checked", report.Checked,
		"missing", len(report.Missing),
		"duration", time.Since(start),
	)
}
