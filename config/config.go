package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"groupdss/database"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string `koanf:"database_url" validate:"required_unless=Environment test"`
	DatabaseName string `koanf:"database_name"`

	// Discord configuration, only needed by the serve command
	DiscordToken     string `koanf:"discord_token"`
	GuildID          string `koanf:"guild_id"`
	ResultsChannelID string `koanf:"results_channel_id"` // Channel that receives finished rankings

	// NATS configuration
	NATSServers       string `koanf:"nats_servers"` // comma-separated, empty disables forwarding
	NATSSubjectPrefix string `koanf:"nats_subject_prefix" validate:"required"`

	// Metrics endpoint address, empty disables it
	MetricsAddr string `koanf:"metrics_addr"`

	// Logging
	LogLevel  string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Environment
	Environment string `koanf:"environment" validate:"oneof=development production test"`
}

// EnvPrefix is stripped from prefixed environment variables, so both
// GROUPDSS_DATABASE_URL and DATABASE_URL set database_url.
const EnvPrefix = "GROUPDSS_"

// ConfigFileEnv names the environment variable pointing at an optional YAML file
const ConfigFileEnv = "GROUPDSS_CONFIG"

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup

	validate = validator.New()
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// Load loads the global configuration and reports errors instead of panicking.
// Later calls to Get return the same instance.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance, nil
	}

	cfg, err := load()
	if err != nil {
		return nil, err
	}
	instance = cfg
	return instance, nil
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// NATSEnabled reports whether engine events should be forwarded to NATS
func (c *Config) NATSEnabled() bool {
	return strings.TrimSpace(c.NATSServers) != ""
}

func defaults() *Config {
	return &Config{
		NATSSubjectPrefix: "decision",
		MetricsAddr:       ":9090",
		LogLevel:          "info",
		LogFormat:         "text",
		Environment:       "development",
	}
}

// load layers defaults, an optional YAML file and the environment
func load() (*Config, error) {
	// A missing .env file is not an error
	_ = godotenv.Load()

	k := koanf.New(".")

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	cfg := defaults()
	known := knownKeys()

	// Plain names first so prefixed variables win. Empty values never
	// override a lower layer.
	plain := env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		key = strings.ToLower(key)
		if _, ok := known[key]; !ok || value == "" {
			return "", nil
		}
		return key, value
	})
	if err := k.Load(plain, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	prefixed := env.ProviderWithValue(EnvPrefix, ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
	})
	if err := k.Load(prefixed, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.DatabaseName != "" && strings.TrimSpace(cfg.DatabaseName) == "" {
		return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
	}
	return nil
}

func knownKeys() map[string]struct{} {
	return map[string]struct{}{
		"database_url":        {},
		"database_name":       {},
		"discord_token":       {},
		"guild_id":            {},
		"results_channel_id":  {},
		"nats_servers":        {},
		"nats_subject_prefix": {},
		"metrics_addr":        {},
		"log_level":           {},
		"log_format":          {},
		"environment":         {},
	}
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	cfg := defaults()
	cfg.Environment = "test"
	cfg.MetricsAddr = ""
	return cfg
}
