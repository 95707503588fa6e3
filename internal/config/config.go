package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	BaseURL        string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string
	TemplatesPath  string
	StaticPath     string

	// Lock actuator
	LockAPIBaseURL string
	LockID         string
	LockAPIKey     string

	// Telegram bot + notification channel
	TelegramBotToken string
	TelegramChatID   string

	// SES email notifications (optional second channel)
	AWSRegion  string
	NotifyFrom string
	NotifyTo   string
	NotifyName string

	// Privileged access
	TrustedIP         string
	AdminPasswordHash string
	AdminTokenSecret  string
	AdminTokenTTL     time.Duration

	// Presentation
	DisplayTimezone string

	// Grant validity windows
	InviteValidity time.Duration
	KnockValidity  time.Duration
	NonceMaxSkew   time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:     getEnv("PORT", "3000"),
		BaseURL:        getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./doorman.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		TemplatesPath:  getEnv("TEMPLATES_PATH", "./internal/templates"),
		StaticPath:     getEnv("STATIC_PATH", "./static"),

		LockAPIBaseURL: getEnv("LOCK_API_BASE_URL", ""),
		LockID:         getEnv("LOCK_ID", ""),
		LockAPIKey:     getEnv("LOCK_API_KEY", ""),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),

		AWSRegion:  getEnv("AWS_REGION", "us-east-1"),
		NotifyFrom: getEnv("NOTIFY_FROM_EMAIL", ""),
		NotifyTo:   getEnv("NOTIFY_TO_EMAIL", ""),
		NotifyName: getEnv("NOTIFY_FROM_NAME", "Doorman"),

		TrustedIP:         getEnv("TRUSTED_IP", "::1"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminTokenSecret:  getEnv("ADMIN_TOKEN_SECRET", ""),
		AdminTokenTTL:     12 * time.Hour,

		DisplayTimezone: getEnv("DISPLAY_TZ", "America/New_York"),

		InviteValidity: 30 * time.Hour,
		KnockValidity:  30 * time.Hour,
		NonceMaxSkew:   300 * time.Second,
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
