package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Dosada05/tournament-results/models"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL,required"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"db/migrations"`
	ServerPort     int    `env:"SERVER_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecretKey      string `env:"JWT_SECRET_KEY,required"`
	AdminUsername     string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH,required"`

	ScoringMode         string `env:"SCORING_MODE" envDefault:"bracket"`
	ScheduleMaxAttempts int    `env:"SCHEDULE_MAX_ATTEMPTS" envDefault:"100"`
	// Значение JSON, например {"number_of_rounds":2}.
	RoundRobinSettings string `env:"ROUND_ROBIN_SETTINGS"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	ReportPath string `env:"REPORT_PATH" envDefault:"index.md"`

	// Cloudflare R2. Публикация отчёта отключена, если не задано.
	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`
	R2PublicBaseURL   string `env:"R2_PUBLIC_BASE_URL"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`
}

const minJWTSecretLength = 16

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if len(c.JWTSecretKey) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET_KEY is too short (%d chars); minimum %d characters required", len(c.JWTSecretKey), minJWTSecretLength)
	}
	if _, err := models.ParseScoringMode(c.ScoringMode); err != nil {
		return fmt.Errorf("SCORING_MODE: %w", err)
	}
	if c.ScheduleMaxAttempts < 1 {
		return fmt.Errorf("SCHEDULE_MAX_ATTEMPTS must be at least 1, got %d", c.ScheduleMaxAttempts)
	}
	if strings.TrimSpace(c.ReportPath) == "" {
		return fmt.Errorf("REPORT_PATH must not be empty")
	}
	return nil
}

// Mode returns the validated scoring mode.
func (c *Config) Mode() models.ScoringMode {
	mode, _ := models.ParseScoringMode(c.ScoringMode)
	return mode
}

func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != ""
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
