package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/brightops/pulse/internal/config"
	"github.com/brightops/pulse/internal/domain/project"
	"github.com/brightops/pulse/internal/domain/report"
	"github.com/brightops/pulse/internal/domain/timeentry"
	"github.com/brightops/pulse/internal/domain/user"
	"github.com/brightops/pulse/internal/narrative"
	"github.com/brightops/pulse/internal/sqlite"
	"github.com/brightops/pulse/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	projectRepo := sqlite.NewProjectRepository(db)
	userRepo := sqlite.NewUserRepository(db)
	timeEntryRepo := sqlite.NewTimeEntryRepository(db)
	reportRepo := sqlite.NewReportRepository(db)

	var generator report.Generator
	if cfg.OpenAI.APIKey != "" {
		gen, err := narrative.NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger)
		if err != nil {
			logger.Error("failed to configure narrative generator", "error", err)
			os.Exit(1)
		}
		generator = gen
	} else {
		logger.Info("narrative reports disabled", "reason", "no OpenAI API key configured")
	}

	svc := transport.Services{
		Projects:    project.NewService(projectRepo, logger),
		Users:       user.NewService(userRepo, logger),
		TimeEntries: timeentry.NewService(timeEntryRepo, logger),
		Reports:     report.NewService(reportRepo, generator, logger),
	}

	var authMiddleware func(http.Handler) http.Handler
	if cfg.Auth.Password != "" {
		authMiddleware = transport.BasicAuth(cfg.Auth.Password)
	} else {
		logger.Warn("authentication disabled", "reason", "no app password configured")
	}

	router := transport.NewServer(svc, logger, authMiddleware)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
