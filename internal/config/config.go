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
	App        AppConfig
	Logger     LoggerConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	ISBNdb     ISBNdbConfig
	Discovery  DiscoveryConfig
	Classifier ClassifierConfig
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
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
}

// DatabaseConfig holds SQLite storage configuration.
type DatabaseConfig struct {
	// Path is the SQLite database file (default: ~/PageTurn/pageturn.db).
	Path string
}

// AuthConfig holds token verification configuration.
type AuthConfig struct {
	// AccessTokenKey is the PASETO v4 symmetric key shared with the identity
	// provider, hex-encoded (32 bytes).
	AccessTokenKeyHex string
}

// ISBNdbConfig holds ISBNdb metadata service configuration.
type ISBNdbConfig struct {
	// APIKey authorizes per-ISBN subject lookups. Empty disables lookups;
	// the Rewind pipeline then falls back to library genres only.
	APIKey string
	// LookupConcurrency bounds the per-ISBN fan-out (default: 4).
	LookupConcurrency int
}

// DiscoveryConfig holds Open Library discovery configuration.
type DiscoveryConfig struct {
	// ResultLimit caps search results returned to clients (default: 8).
	ResultLimit int
}

// ClassifierConfig holds classification oracle configuration.
type ClassifierConfig struct {
	// APIKey authorizes the OpenAI-compatible completion endpoint. Empty
	// disables personality classification.
	APIKey string
	// Model is the completion model (default: gpt-4o-mini).
	Model string
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dbPath := flag.String("db-path", "", "Path to the SQLite database file")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")

	isbndbKey := flag.String("isbndb-key", "", "ISBNdb API key")
	lookupConcurrency := flag.String("lookup-concurrency", "", "Max concurrent ISBN metadata lookups (default: 4)")
	discoveryLimit := flag.String("discovery-limit", "", "Max discovery search results (default: 8)")

	classifierKey := flag.String("classifier-key", "", "Classification oracle API key")
	classifierModel := flag.String("classifier-model", "", "Classification model (default: gpt-4o-mini)")

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
			Port: getConfigValue(*serverPort, "SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Path: getConfigValue(*dbPath, "DATABASE_PATH", ""),
		},
		Auth: AuthConfig{
			AccessTokenKeyHex: getConfigValue("", "ACCESS_TOKEN_KEY", ""),
		},
		ISBNdb: ISBNdbConfig{
			APIKey:            getConfigValue(*isbndbKey, "ISBNDB_API_KEY", ""),
			LookupConcurrency: getIntConfigValue(*lookupConcurrency, "ISBN_LOOKUP_CONCURRENCY", 4),
		},
		Discovery: DiscoveryConfig{
			ResultLimit: getIntConfigValue(*discoveryLimit, "DISCOVERY_RESULT_LIMIT", 8),
		},
		Classifier: ClassifierConfig{
			APIKey: getConfigValue(*classifierKey, "OPENAI_API_KEY", ""),
			Model:  getConfigValue(*classifierModel, "OPENAI_MODEL", "gpt-4o-mini"),
		},
	}

	// Parse server timeouts.
	var err error
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

	// Expand and validate the database path.
	if err := cfg.expandDatabasePath(); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

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

	if c.Database.Path == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	if c.ISBNdb.LookupConcurrency < 1 {
		return fmt.Errorf("lookup concurrency must be at least 1, got %d", c.ISBNdb.LookupConcurrency)
	}

	if c.Discovery.ResultLimit < 1 {
		return fmt.Errorf("discovery result limit must be at least 1, got %d", c.Discovery.ResultLimit)
	}

	// API keys may be empty: the affected features degrade rather than fail.

	return nil
}

// parseDurationValue resolves a duration setting from flag/env/default.
func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(strings.ReplaceAll(envKey, "_", " ")), raw, err)
	}
	return d, nil
}

// expandDatabasePath expands ~ and makes the path absolute.
// Defaults to ~/PageTurn/pageturn.db.
func (c *Config) expandDatabasePath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "PageTurn", "pageturn.db")

	expanded, err := expandPath(c.Database.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Database.Path = expanded
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

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over .env file values.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
