// cmd/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"go_5_flashcard_srs/internal/applog"
	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/handlers"
	"go_5_flashcard_srs/internal/jobs"
	"go_5_flashcard_srs/internal/llm"
	"go_5_flashcard_srs/internal/repository"
	"go_5_flashcard_srs/internal/service"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	//　設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := applog.New(cfg.Log.Level, os.Stderr, tempLogger)
	slog.SetDefault(logger)
	log.Println("Log Config Loaded...")

	if err := run(cfg, logger); err != nil {
		logger.Error("Application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Server exiting")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Application starting...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Error("Error closing database connection", slog.Any("error", err))
		} else {
			logger.Info("Database connection closed.")
		}
	}()

	// Dependency Injection
	userRepo := repository.NewGormUserRepository()
	deckRepo := repository.NewGormDeckRepository()
	cardRepo := repository.NewGormCardRepository()
	progressRepo := repository.NewGormProgressRepository()

	var generator service.CardGenerator = llm.Disabled{}
	if cfg.LLM.APIKey != "" {
		generator = llm.New(cfg.LLM)
	} else {
		logger.Warn("llm.api_key is not set; card generation and image extraction are disabled")
	}

	mailer, err := service.NewMailer(ctx, cfg)
	if err != nil {
		return err
	}

	svc := handlers.Services{
		Auth:   service.NewAuthService(db, userRepo, cfg),
		Decks:  service.NewDeckService(db, deckRepo, cardRepo),
		Cards:  service.NewCardService(db, deckRepo, cardRepo, progressRepo, generator),
		Review: service.NewReviewService(db, progressRepo, cfg),
	}

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handlers.NewRouter(cfg, svc, sqlDB, logger),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Reminder.Enabled {
		scheduler := jobs.NewReminderScheduler(
			service.NewReminderService(db, progressRepo, mailer, cfg),
			cfg.Reminder.IntervalHours,
			logger,
		)
		if err := scheduler.Start(); err != nil {
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			scheduler.Stop()
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful Shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", slog.Any("error", err))
			return err
		}
		return nil
	})

	return g.Wait()
}
