package repository

import (
	"log/slog"
	"os"
	"strings"
	"time"

	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"               // postgresドライバ
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go_5_flashcard_srs/internal/config"
	"go_5_flashcard_srs/internal/model"
)

// NewDB は PostgreSQL への GORM 接続を生成します
func NewDB(dbCfg config.DatabaseConfig, appLogger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dbCfg.URL), newGormConfig(appLogger))
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	appLogger.Info("Database connection established with GORM")
	return db, nil
}

// NewSQLiteDB はローカル用の SQLite 接続を生成し、スキーマを AutoMigrate します。
// path に ":memory:" を渡すとインメモリDB (テスト用)。
func NewSQLiteDB(path string, appLogger *slog.Logger) (*gorm.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_foreign_keys=on"
	}
	db, err := gorm.Open(sqlite.Open(dsn), newGormConfig(appLogger))
	if err != nil {
		appLogger.Error("Failed to open sqlite database", slog.Any("error", err), slog.String("path", path))
		return nil, err
	}

	// インメモリDBは接続ごとに別DBになるため1本に固定
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := AutoMigrate(db); err != nil {
		appLogger.Error("Failed to migrate sqlite database", slog.Any("error", err))
		return nil, err
	}
	return db, nil
}

// AutoMigrate は goose のマイグレーションを使わない環境 (SQLite) 向けにスキーマを作成します
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.Deck{}, &model.Card{}, &model.CardProgress{})
}

func newGormConfig(appLogger *slog.Logger) *gorm.Config {
	// 例: 環境変数 APP_ENV によって GORM のログレベルを切り替え
	gormLogLevel := gormlogger.Warn
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	return &gorm.Config{
		Logger: slogGormLogger.LogMode(gormLogLevel),
		// 一意制約違反を gorm.ErrDuplicatedKey に変換する
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}
