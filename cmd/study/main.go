// cmd/study はターミナルで1ユーザー分の復習セッションを行うクライアントです
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"go_5_flashcard_srs/internal/applog"
	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/middleware"
	"go_5_flashcard_srs/internal/repository"
	"go_5_flashcard_srs/internal/service"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	email := flag.String("email", "", "email of the user to study as (required)")
	deck := flag.String("deck", "", "restrict the session to one deck id")
	useSQLite := flag.Bool("sqlite", false, "use the local SQLite database (database.sqlite_path)")
	flag.Parse()

	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(tempLogger)

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(os.Stderr, "-email is required")
		flag.Usage()
		os.Exit(2)
	}

	var deckID *uuid.UUID
	if *deck != "" {
		id, err := uuid.Parse(*deck)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -deck: %v\n", err)
			os.Exit(2)
		}
		deckID = &id
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		tempLogger.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := applog.New(cfg.Log.Level, os.Stderr, tempLogger)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = middleware.WithLogger(ctx, logger)

	db, err := openDB(cfg, *useSQLite, logger)
	if err != nil {
		logger.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	user, err := repository.NewGormUserRepository().FindByEmail(ctx, db, strings.ToLower(strings.TrimSpace(*email)))
	if err != nil {
		logger.Error("User lookup failed", slog.Any("error", err), slog.String("email", *email))
		os.Exit(1)
	}

	review := service.NewReviewService(db, repository.NewGormProgressRepository(), cfg)
	cards, err := review.GetDueCards(ctx, user.UserID, deckID)
	if err != nil {
		logger.Error("Failed to load due cards", slog.Any("error", err))
		os.Exit(1)
	}

	result, err := runStudy(ctx, os.Stdin, os.Stdout, review, user.UserID, cards)
	if err != nil {
		logger.Error("Study session aborted", slog.Any("error", err))
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, "\nReviewed %d times, %d cards left in this session.\n", result.Reviewed, result.Remaining)
}

func openDB(cfg *config.Config, useSQLite bool, logger *slog.Logger) (*gorm.DB, error) {
	if useSQLite || cfg.Database.URL == "" {
		return repository.NewSQLiteDB(cfg.Database.SQLitePath, logger)
	}
	return repository.NewDB(cfg.Database, logger)
}
