// Package applog はコマンド共通の slog ロガーを組み立てます
package applog

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel は config の log.level を slog.Level に変換します。不明な値は Info と false。
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// New は APP_ENV=dev なら tint、それ以外は JSON のハンドラでロガーを作ります。
// tempLogger には設定読み込み中のメッセージを出す。
func New(level string, w io.Writer, tempLogger *slog.Logger) *slog.Logger {
	logLevel := new(slog.LevelVar)
	lv, ok := ParseLevel(level)
	if !ok {
		tempLogger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}
	logLevel.Set(lv)

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	return slog.New(handler)
}
