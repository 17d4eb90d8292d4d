// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Auth     AuthConfig     `mapstructure:"auth"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Mailer   MailerConfig   `mapstructure:"mailer"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	SES      SESConfig      `mapstructure:"ses"`
	Reminder ReminderConfig `mapstructure:"reminder"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	// SQLitePath は cmd/study のローカル実行用
	SQLitePath string `mapstructure:"sqlite_path"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	// DueLimit は復習対象一覧の最大件数。0 以下なら全件。
	DueLimit int `mapstructure:"due_limit"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AuthConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type JWTConfig struct {
	SecretKey      string        `mapstructure:"secret_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type LLMConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int64  `mapstructure:"max_tokens"`
}

type UploadConfig struct {
	MaxImageBytes int64 `mapstructure:"max_image_bytes"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // "log" | "smtp" | "ses"
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"` // "static_credentials" | "iam_role"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type ReminderConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	IntervalHours int    `mapstructure:"interval_hours"`
	FrontendURL   string `mapstructure:"frontend_url"`
}

// LoadConfig は path 配下の config.yaml と環境変数から設定を読み込みます。
// 環境変数は APP_ 接頭辞 + キーの "." を "_" に置換した名前 (例: APP_APP_DUE_LIMIT)。
func LoadConfig(path string) (*Config, error) {
	// .env があれば先に読み込む (無くてもエラーにしない)
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// よく使う環境変数は接頭辞なしでも受け付ける
	_ = v.BindEnv("auth.enabled", "APP_AUTH_ENABLED", "AUTH_ENABLED")
	_ = v.BindEnv("database.url", "APP_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("jwt.secret_key", "APP_JWT_SECRET_KEY", "JWT_SECRET")
	_ = v.BindEnv("llm.api_key", "APP_LLM_API_KEY", "ANTHROPIC_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Warn("Config file not found. Using defaults and environment variables.", slog.String("path", path))
		} else {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("Config loaded",
		slog.String("port", cfg.Server.Port),
		slog.Int("due_limit", cfg.App.DueLimit),
		slog.Bool("auth_enabled", cfg.Auth.Enabled),
		slog.String("mailer", cfg.Mailer.Type),
		slog.Bool("llm_enabled", cfg.LLM.APIKey != ""),
	)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", DefaultDatabaseMaxOpen)
	v.SetDefault("database.max_idle_conns", DefaultDatabaseMaxIdle)
	v.SetDefault("database.sqlite_path", DefaultDatabaseSQLitePath)
	v.SetDefault("app.name", AppName)
	v.SetDefault("app.due_limit", DefaultAppDueLimit)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Accept", "Authorization", "Content-Type", "X-User-ID"})
	v.SetDefault("cors.exposed_headers", []string{"Content-Disposition", "X-Request-Id"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", DefaultCORSMaxAgeSeconds)
	v.SetDefault("auth.enabled", DefaultAuthEnabled)
	v.SetDefault("jwt.secret_key", "")
	v.SetDefault("jwt.access_token_ttl", DefaultAccessTokenTTL)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", DefaultLLMModel)
	v.SetDefault("llm.max_tokens", DefaultLLMMaxTokens)
	v.SetDefault("upload.max_image_bytes", DefaultMaxImageBytes)
	v.SetDefault("mailer.type", DefaultMailerType)
	v.SetDefault("smtp.host", DefaultSMTPHost)
	v.SetDefault("smtp.port", DefaultSMTPPort)
	v.SetDefault("smtp.from", DefaultMailFrom)
	v.SetDefault("ses.region", DefaultSESRegion)
	v.SetDefault("ses.from", DefaultMailFrom)
	v.SetDefault("ses.auth_type", DefaultSESAuthType)
	v.SetDefault("ses.access_key_id", "")
	v.SetDefault("ses.secret_access_key", "")
	v.SetDefault("reminder.enabled", false)
	v.SetDefault("reminder.interval_hours", DefaultReminderInterval)
	v.SetDefault("reminder.frontend_url", DefaultReminderFrontend)
}

func (c *Config) validate() error {
	if c.Auth.Enabled && c.JWT.SecretKey == "" {
		return errors.New("config: jwt.secret_key is required when auth is enabled")
	}
	if c.JWT.AccessTokenTTL <= 0 {
		return fmt.Errorf("config: jwt.access_token_ttl must be positive, got %s", c.JWT.AccessTokenTTL)
	}
	if c.Reminder.IntervalHours <= 0 {
		return fmt.Errorf("config: reminder.interval_hours must be positive, got %d", c.Reminder.IntervalHours)
	}
	switch c.Mailer.Type {
	case "log", "smtp", "ses":
	default:
		return fmt.Errorf("config: unknown mailer.type %q", c.Mailer.Type)
	}
	return nil
}
