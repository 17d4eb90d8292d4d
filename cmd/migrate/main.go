// cmd/migrate はデータベースを (無ければ) 作成し、マイグレーションを適用します
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/lib/pq"

	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/repository"
)

// invalid_catalog_name
const codeDatabaseMissing = "3D000"

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		logger.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.Database.URL == "" {
		logger.Error("database.url (DATABASE_URL) is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := openOrCreate(ctx, cfg.Database.URL, logger)
	if err != nil {
		logger.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db, logger); err != nil {
		logger.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Migration finished")
}

// openOrCreate は接続を確認し、DBが存在しなければ postgres DB 経由で作成してから再接続します
func openOrCreate(ctx context.Context, dsn string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	err = db.PingContext(ctx)
	if err == nil {
		return db, nil
	}
	db.Close()

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != codeDatabaseMissing {
		return nil, fmt.Errorf("ping: %w", err)
	}

	name, adminDSN, err := adminDSN(dsn)
	if err != nil {
		return nil, err
	}
	logger.Info("Database does not exist, creating", slog.String("database", name))
	if err := createDatabase(ctx, adminDSN, name); err != nil {
		return nil, err
	}

	db, err = sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("reopen: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping after create: %w", err)
	}
	return db, nil
}

// adminDSN は接続先DB名と、同じサーバーの postgres DB への接続文字列を返します
func adminDSN(dsn string) (string, string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", "", fmt.Errorf("parse database url: %w", err)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "", "", errors.New("database url has no database name")
	}
	u.Path = "/postgres"
	return name, u.String(), nil
}

func createDatabase(ctx context.Context, dsn, name string) error {
	admin, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open postgres database: %w", err)
	}
	defer admin.Close()

	if _, err := admin.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	return nil
}
