// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Server  ServerConfig
	Auth    AuthConfig
	Data    DataConfig
	Catalog CatalogConfig
	Mail    MailConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// AllowedOrigins is the comma-separated CORS allow-list for the SPA frontend.
	AllowedOrigins string
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key for access tokens (32 bytes).
	AccessTokenKey []byte
	// Token lifetimes.
	AccessTokenDuration  time.Duration // e.g., 15m
	RefreshTokenDuration time.Duration // e.g., 720h (30 days)
	// Validity window for password-reset tokens.
	ResetTokenDuration time.Duration // e.g., 72h
}

// DataConfig holds durable storage configuration.
type DataConfig struct {
	// BasePath is the directory holding the SQLite database, the badger
	// session store, and the auth key file.
	BasePath string
}

// CatalogConfig holds upstream game-catalog (RAWG) configuration.
type CatalogConfig struct {
	BaseURL string
	APIKey  string
}

// MailConfig holds outbound email configuration.
type MailConfig struct {
	// SendGridKey enables the SendGrid sender; empty means emails are logged only.
	SendGridKey string
	FromName    string
	FromAddress string
	// FrontendURL is the SPA base used to build password-reset links.
	FrontendURL string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for data storage")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	allowedOrigins := flag.String("allowed-origins", "", "Comma-separated CORS origins")

	accessTokenDuration := flag.String("access-token-duration", "", "Access token lifetime (e.g., 15m)")
	refreshTokenDuration := flag.String("refresh-token-duration", "", "Refresh token lifetime (e.g., 720h)")
	resetTokenDuration := flag.String("reset-token-duration", "", "Password-reset token lifetime (e.g., 72h)")

	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	rawgBaseURL := flag.String("rawg-base-url", "", "RAWG API base URL")
	rawgAPIKey := flag.String("rawg-api-key", "", "RAWG API key")

	frontendURL := flag.String("frontend-url", "", "Frontend base URL for password-reset links")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Port:           getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			AllowedOrigins: getConfigValue(*allowedOrigins, "ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Catalog: CatalogConfig{
			BaseURL: getConfigValue(*rawgBaseURL, "RAWG_BASE_URL", "https://api.rawg.io/api"),
			APIKey:  getConfigValue(*rawgAPIKey, "RAWG_API_KEY", ""),
		},
		Mail: MailConfig{
			SendGridKey: getConfigValue("", "SENDGRID_API_KEY", ""),
			FromName:    getConfigValue("", "MAIL_FROM_NAME", "GamesHub"),
			FromAddress: getConfigValue("", "MAIL_FROM_ADDRESS", "no-reply@gameshub.app"),
			FrontendURL: getConfigValue(*frontendURL, "FRONTEND_URL", "http://localhost:5173"),
		},
	}

	// Parse durations.
	var err error
	cfg.Auth.AccessTokenDuration, err = parseDurationValue(*accessTokenDuration, "ACCESS_TOKEN_DURATION", "15m")
	if err != nil {
		return nil, err
	}
	cfg.Auth.RefreshTokenDuration, err = parseDurationValue(*refreshTokenDuration, "REFRESH_TOKEN_DURATION", "720h")
	if err != nil {
		return nil, err
	}
	cfg.Auth.ResetTokenDuration, err = parseDurationValue(*resetTokenDuration, "RESET_TOKEN_DURATION", "72h")
	if err != nil {
		return nil, err
	}
	cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s")
	if err != nil {
		return nil, err
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if c.Catalog.BaseURL == "" {
		return errors.New("RAWG_BASE_URL is required")
	}

	// RAWG_API_KEY may be empty in development; the catalog client still
	// attaches whatever is configured and lets the upstream reject it.

	return nil
}

// DatabasePath returns the SQLite database file location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.BasePath, "gameshub.db")
}

// SessionsPath returns the badger session store directory.
func (c *Config) SessionsPath() string {
	return filepath.Join(c.Data.BasePath, "sessions")
}

// parseDurationValue resolves flag/env/default and parses the result.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, raw, err)
	}
	return d, nil
}

// expandDataPath expands ~ and makes the path absolute.
// Defaults to ~/GamesHub/data when unset.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "GamesHub", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
// Existing environment variables are not overwritten.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
