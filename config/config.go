// Package config loads runtime settings from an optional YAML file and the
// environment
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names
const (
	EnvConfigFile      = "ADMINDASH_CONFIG"
	EnvServerAddress   = "ADMINDASH_SERVER_ADDRESS"
	EnvListenAddress   = "ADMINDASH_LISTEN_ADDRESS"
	EnvDBDriver        = "DB_DRIVER"
	EnvDBDSN           = "DB_DSN"
	EnvDBHost          = "DB_HOST"
	EnvDBPort          = "DB_PORT"
	EnvDBUser          = "DB_USER"
	EnvDBPassword      = "DB_PASSWORD"
	EnvDBName          = "DB_NAME"
	EnvDBSSLMode       = "DB_SSL_MODE"
	EnvLogLevel        = "LOG_LEVEL"
	EnvLogFormat       = "LOG_FORMAT"
	EnvJWTSecret       = "ADMINDASH_JWT_SECRET"
	EnvAPIToken        = "ADMINDASH_API_TOKEN"
	EnvClientTimeout   = "ADMINDASH_CLIENT_TIMEOUT"
	EnvClientRateLimit = "ADMINDASH_CLIENT_RATE_LIMIT"
	EnvListPageSize    = "ADMINDASH_PAGE_SIZE"
	EnvSearchDebounce  = "ADMINDASH_SEARCH_DEBOUNCE"
	EnvMetricsEnabled  = "ADMINDASH_METRICS_ENABLED"
	EnvShutdownTimeout = "ADMINDASH_SHUTDOWN_TIMEOUT"
)

// Config is the full runtime configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Auth     AuthConfig     `yaml:"auth"`
	Client   ClientConfig   `yaml:"client"`
	Listing  ListingConfig  `yaml:"listing"`
}

// ServerConfig configures the API server
type ServerConfig struct {
	ListenAddress   string        `yaml:"listen_address"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MetricsEnabled  bool          `yaml:"metrics_enabled"`
}

// DatabaseConfig selects the database driver and connection. DSN wins over
// the individual fields when set.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuthConfig configures bearer token verification
type AuthConfig struct {
	// JWTSecret signs and verifies permission tokens. Empty disables auth.
	JWTSecret string `yaml:"jwt_secret"`
	// Token is the bearer token the CLI sends
	Token string `yaml:"token"`
}

// ClientConfig configures the API client
type ClientConfig struct {
	ServerAddress string        `yaml:"server_address"`
	Timeout       time.Duration `yaml:"timeout"`
	// RateLimit caps requests per second; zero means unlimited
	RateLimit float64 `yaml:"rate_limit"`
}

// ListingConfig configures list controllers
type ListingConfig struct {
	PageSize       int           `yaml:"page_size"`
	SearchDebounce time.Duration `yaml:"search_debounce"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Server: ServerConfig{
			ListenAddress:   ":8080",
			ShutdownTimeout: 10 * time.Second,
			MetricsEnabled:  true,
		},
		Database: DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Name:     "admindash",
			SSLMode:  "disable",
		},
		Log: LogConfig{Level: "info", Format: "json"},
		Client: ClientConfig{
			ServerAddress: "http://localhost:8080",
			Timeout:       30 * time.Second,
		},
		Listing: ListingConfig{
			PageSize:       10,
			SearchDebounce: 500 * time.Millisecond,
		},
	}
}

// Load reads .env (if present), then the YAML file at path (if non-empty),
// then applies environment overrides.
func Load(path string) (Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = GetEnv(EnvConfigFile, "")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.ListenAddress = GetEnv(EnvListenAddress, cfg.Server.ListenAddress)
	cfg.Client.ServerAddress = GetEnv(EnvServerAddress, cfg.Client.ServerAddress)
	cfg.Database.Driver = GetEnv(EnvDBDriver, cfg.Database.Driver)
	cfg.Database.DSN = GetEnv(EnvDBDSN, cfg.Database.DSN)
	cfg.Database.Host = GetEnv(EnvDBHost, cfg.Database.Host)
	cfg.Database.User = GetEnv(EnvDBUser, cfg.Database.User)
	cfg.Database.Password = GetEnv(EnvDBPassword, cfg.Database.Password)
	cfg.Database.Name = GetEnv(EnvDBName, cfg.Database.Name)
	cfg.Database.SSLMode = GetEnv(EnvDBSSLMode, cfg.Database.SSLMode)
	cfg.Log.Level = GetEnv(EnvLogLevel, cfg.Log.Level)
	cfg.Log.Format = GetEnv(EnvLogFormat, cfg.Log.Format)
	cfg.Auth.JWTSecret = GetEnv(EnvJWTSecret, cfg.Auth.JWTSecret)
	cfg.Auth.Token = GetEnv(EnvAPIToken, cfg.Auth.Token)

	var err error
	if cfg.Database.Port, err = getEnvInt(EnvDBPort, cfg.Database.Port); err != nil {
		return err
	}
	if cfg.Listing.PageSize, err = getEnvInt(EnvListPageSize, cfg.Listing.PageSize); err != nil {
		return err
	}
	if cfg.Client.Timeout, err = getEnvDuration(EnvClientTimeout, cfg.Client.Timeout); err != nil {
		return err
	}
	if cfg.Listing.SearchDebounce, err = getEnvDuration(EnvSearchDebounce, cfg.Listing.SearchDebounce); err != nil {
		return err
	}
	if cfg.Server.ShutdownTimeout, err = getEnvDuration(EnvShutdownTimeout, cfg.Server.ShutdownTimeout); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvClientRateLimit); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvClientRateLimit, err)
		}
		cfg.Client.RateLimit = f
	}
	if v, ok := os.LookupEnv(EnvMetricsEnabled); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMetricsEnabled, err)
		}
		cfg.Server.MetricsEnabled = b
	}
	return nil
}

// Validate checks the configuration for values that cannot work
func (c Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	if c.Listing.PageSize < 1 {
		errs = append(errs, errors.New("listing page size must be positive"))
	}
	if c.Client.RateLimit < 0 {
		errs = append(errs, errors.New("client rate limit must not be negative"))
	}
	if c.Listing.SearchDebounce < 0 {
		errs = append(errs, errors.New("search debounce must not be negative"))
	}
	return errors.Join(errs...)
}

// GetEnv retrieves the value of an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
