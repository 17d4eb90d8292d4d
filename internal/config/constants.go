// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "flashcard-srs"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort         = ":8080"
	DefaultLogLevel           = "info"
	DefaultAppDueLimit        = 0 // 0 = 上限なし
	DefaultAuthEnabled        = true
	DefaultAccessTokenTTL     = 24 * time.Hour
	DefaultLLMModel           = "claude-3-5-haiku-latest"
	DefaultLLMMaxTokens       = 1024
	DefaultMaxImageBytes      = 5 << 20
	DefaultMailerType         = "log"
	DefaultReminderInterval   = 24
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultDatabaseMaxOpen    = 25
	DefaultDatabaseMaxIdle    = 10
	DefaultSESRegion          = "ap-northeast-1"
	DefaultCORSMaxAgeSeconds  = 300
	DefaultReminderFrontend   = "http://localhost:5173"
	DefaultSMTPPort           = 1025
	DefaultSMTPHost           = "localhost"
	DefaultMailFrom           = "no-reply@flashcard.local"
	DefaultSESAuthType        = "iam_role"
	DefaultDatabaseSQLitePath = "flashcards.db"
)
