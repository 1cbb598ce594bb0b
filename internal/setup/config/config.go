package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// CurrentVersion is the expected version of the config file.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	Server     Server     `koanf:"server"`
	Session    Session    `koanf:"session"`
	Guest      Guest      `koanf:"guest"`
	RateLimit  RateLimit  `koanf:"rate_limit"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
}

// Server contains HTTP server configuration.
type Server struct {
	// Listen hostname.
	Host string `koanf:"host"`
	// Listen port.
	Port int `koanf:"port"`
}

// Session contains login session configuration.
type Session struct {
	// Name of the session cookie.
	CookieName string `koanf:"cookie_name"`
	// Session lifetime in hours.
	TTLHours int `koanf:"ttl_hours"`
}

// Guest contains guest display-name configuration for anonymous visitors.
type Guest struct {
	// Name of the guest display-name cookie.
	CookieName string `koanf:"cookie_name"`
	// Cookie lifetime in hours.
	TTLHours int `koanf:"ttl_hours"`
	// Pool of display names to assign.
	Names []string `koanf:"names"`
}

// RateLimit contains rate limiting configuration for the auth routes.
type RateLimit struct {
	// Sustained requests per second per client IP.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	// Burst size per client IP.
	BurstSize int `koanf:"burst_size"`
	// Violations before a temporary block.
	StrikeLimit int `koanf:"strike_limit"`
	// Block duration in seconds.
	BlockDuration int `koanf:"block_duration"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
}

// LoadConfig loads the configuration from the first config path containing
// a config.toml. Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// List search paths
	configPaths := []string{
		".tipboard",
		homeDir + "/.tipboard/config",
		"/etc/tipboard/config",
		"/app/config",
		"config",
		".",
	}

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := path + "/config.toml"
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: config.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(config.Version); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion validates the config file version.
func checkConfigVersion(version int) error {
	if version == 0 {
		return ErrConfigVersionMissing
	}

	if version != CurrentVersion {
		return fmt.Errorf("%w: config.toml (expected %d, got %d)",
			ErrConfigVersionMismatch, CurrentVersion, version)
	}

	return nil
}
