// Package config provides Viper-based configuration loading for the Shop
// Master application.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backend identifiers.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// ServerConfig holds the local HTTP API settings.
type ServerConfig struct {
	// Host is the bind address for the HTTP listener.
	Host string `mapstructure:"host"`
	// Port is the TCP port for the HTTP listener.
	Port int `mapstructure:"port"`
	// ShutdownTimeout bounds graceful shutdown on termination.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the "host:port" listen address.
//
// Postcondition: Returns a non-empty string in "host:port" format.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds PostgreSQL connection settings for the optional
// postgres storage backend.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// StorageConfig selects and parameterizes the persistence backend.
type StorageConfig struct {
	// Backend is the persistence backend: "file" or "postgres".
	Backend string `mapstructure:"backend"`
	// DataDir is the document directory for the file backend.
	DataDir string `mapstructure:"data_dir"`
	// Database holds connection settings for the postgres backend.
	Database DatabaseConfig `mapstructure:"database"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// EnrichConfig holds the optional LLM flavor-enrichment settings. The API
// key is read from the ANTHROPIC_API_KEY environment variable, never from
// the config file.
type EnrichConfig struct {
	// Enabled turns generated-text enrichment on.
	Enabled bool `mapstructure:"enabled"`
	// Model is the model identifier used for enrichment requests.
	Model string `mapstructure:"model"`
	// Timeout bounds a single enrichment request.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config is the top-level application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
	Enrich  EnrichConfig  `mapstructure:"enrich"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var violations []string
	violations = append(violations, validateServer(c.Server)...)
	violations = append(violations, validateStorage(c.Storage)...)
	violations = append(violations, validateLogging(c.Logging)...)
	violations = append(violations, validateEnrich(c.Enrich)...)

	if len(violations) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(violations, "; "))
	}
	return nil
}

func validateServer(s ServerConfig) []string {
	var violations []string
	if s.Port < 1 || s.Port > 65535 {
		violations = append(violations, fmt.Sprintf("server.port must be in [1, 65535], got %d", s.Port))
	}
	if s.ShutdownTimeout <= 0 {
		violations = append(violations, "server.shutdown_timeout must be > 0")
	}
	return violations
}

func validateStorage(s StorageConfig) []string {
	var violations []string
	switch s.Backend {
	case BackendFile:
		if s.DataDir == "" {
			violations = append(violations, "storage.data_dir must not be empty for the file backend")
		}
	case BackendPostgres:
		if s.Database.Host == "" || s.Database.Name == "" || s.Database.User == "" {
			violations = append(violations, "storage.database host, name, and user must not be empty for the postgres backend")
		}
	default:
		violations = append(violations, fmt.Sprintf("storage.backend must be one of [file, postgres], got %q", s.Backend))
	}
	return violations
}

func validateLogging(l LoggingConfig) []string {
	var violations []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		violations = append(violations, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		violations = append(violations, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	return violations
}

func validateEnrich(e EnrichConfig) []string {
	var violations []string
	if e.Enabled && e.Model == "" {
		violations = append(violations, "enrich.model must not be empty when enrich.enabled is true")
	}
	if e.Enabled && e.Timeout <= 0 {
		violations = append(violations, "enrich.timeout must be > 0 when enrich.enabled is true")
	}
	return violations
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SHOPMASTER_ prefix
	v.SetEnvPrefix("SHOPMASTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8420)
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("storage.backend", BackendFile)
	v.SetDefault("storage.data_dir", "data")

	v.SetDefault("storage.database.host", "localhost")
	v.SetDefault("storage.database.port", 5432)
	v.SetDefault("storage.database.user", "shopmaster")
	v.SetDefault("storage.database.password", "shopmaster")
	v.SetDefault("storage.database.name", "shopmaster")
	v.SetDefault("storage.database.sslmode", "disable")
	v.SetDefault("storage.database.max_conns", 10)
	v.SetDefault("storage.database.min_conns", 2)
	v.SetDefault("storage.database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("enrich.enabled", false)
	v.SetDefault("enrich.model", "claude-sonnet-4-5")
	v.SetDefault("enrich.timeout", "15s")
}
