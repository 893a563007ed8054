package config

import (
	"os"
	"strings"
)

const (
	defaultDBPath    = "./lavender.db"
	defaultPort      = "8080"
	defaultLocale    = "en"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
	envDevelopment   = "development"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	AppEnv        string
	AdminEmail    string
	AdminPassword string
	SessionSecret string
	DBPath        string
	Port          string
	Locale        string
	LogLevel      string
	LogFormat     string
	DefaultsFile  string

	// Warnings lists settings that were missing and left empty.
	Warnings []string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Local development convenience; production injects real environment variables.
	_, _ = loadDotEnv(".env")

	cfg := Config{
		AppEnv:        os.Getenv("APP_ENV"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBPath:        os.Getenv("DB_PATH"),
		Port:          os.Getenv("PORT"),
		Locale:        os.Getenv("LOCALE"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFormat:     os.Getenv("LOG_FORMAT"),
		DefaultsFile:  os.Getenv("DEFAULTS_FILE"),
	}

	if cfg.AppEnv == "" {
		cfg.AppEnv = envDevelopment
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Locale == "" {
		cfg.Locale = defaultLocale
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}

	if cfg.AdminEmail == "" {
		cfg.Warnings = append(cfg.Warnings, "ADMIN_EMAIL is not set")
	}
	if cfg.AdminPassword == "" {
		cfg.Warnings = append(cfg.Warnings, "ADMIN_PASSWORD is not set")
	}
	if cfg.SessionSecret == "" {
		cfg.Warnings = append(cfg.Warnings, "SESSION_SECRET is not set")
	}

	return cfg
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	return strings.EqualFold(c.AppEnv, envDevelopment)
}
