package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: json)

	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	DatabaseDriver string // Store driver (sqlite, postgres) (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./registry.db)
	DatabaseURL    string // Postgres DSN, required when driver is postgres

	PepperFile string // Optional: path to file containing pepper for secret hashing (default: ./pepper)

	AuthHMACSecret    string // Optional: shared secret for HS256 bearer tokens
	AuthPublicKeyFile string // Optional: PEM public key file for RSA/ECDSA/EdDSA bearer tokens
	AuthIssuer        string // Optional: required iss claim on bearer tokens

	RedisURL     string // Optional: when set, rate limits are enforced via Redis
	AMQPURL      string // Optional: when set, lifecycle events are published via AMQP
	AMQPExchange string // Topic exchange for lifecycle events (default: clientreg.events)

	SeedClientID     string // Optional: client id to ensure exists on startup
	SeedClientName   string // Optional: display name for the seed client
	SeedClientSecret string // Optional: plaintext secret for the seed client

	EnableDocs bool // Serve the swagger UI at /swagger/ (default: true outside prod)
}

// fileConfig mirrors the optional YAML config document. Absent keys leave
// the corresponding Config field untouched, so the file layers cleanly
// between built-in defaults and environment overrides.
type fileConfig struct {
	Env                 string `yaml:"env"`
	LogLevel            string `yaml:"log_level"`
	LogFormat           string `yaml:"log_format"`
	Port                int    `yaml:"port"`
	ShutdownGracePeriod string `yaml:"shutdown_grace_period"`

	Database struct {
		Driver string `yaml:"driver"`
		File   string `yaml:"file"`
		URL    string `yaml:"url"`
	} `yaml:"database"`

	PepperFile string `yaml:"pepper_file"`

	Auth struct {
		HMACSecret    string `yaml:"hmac_secret"`
		PublicKeyFile string `yaml:"public_key_file"`
		Issuer        string `yaml:"issuer"`
	} `yaml:"auth"`

	RedisURL string `yaml:"redis_url"`

	AMQP struct {
		URL      string `yaml:"url"`
		Exchange string `yaml:"exchange"`
	} `yaml:"amqp"`

	SeedClient struct {
		ID     string `yaml:"id"`
		Name   string `yaml:"name"`
		Secret string `yaml:"secret"`
	} `yaml:"seed_client"`

	Docs *bool `yaml:"docs"`
}

// LoadConfig resolves configuration by precedence: built-in defaults, then
// the YAML file named by REGISTRY_CONFIG (when set), then environment
// variables. Rate-limit profile overrides are read separately by pkg/httpx
// from RATELIMIT_* variables.
func LoadConfig() (Config, error) {
	cfg := Config{
		Env:                 "dev",
		LogLevel:            "info",
		LogFormat:           "json",
		Port:                8080,
		ShutdownGracePeriod: 10 * time.Second,
		DatabaseDriver:      "sqlite",
		DatabaseFile:        "registry.db",
		PepperFile:          "pepper",
		AMQPExchange:        "clientreg.events",
	}

	var docsSet bool

	if path := os.Getenv("REGISTRY_CONFIG"); path != "" {
		set, err := cfg.applyFile(path)
		if err != nil {
			return Config{}, err
		}
		docsSet = set
	}

	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)

	cfg.DatabaseDriver = getEnvOrDefault("REGISTRY_DB_DRIVER", cfg.DatabaseDriver)
	cfg.DatabaseFile = getEnvOrDefault("REGISTRY_DB_FILE", cfg.DatabaseFile)
	cfg.DatabaseURL = getEnvOrDefault("REGISTRY_DB_URL", cfg.DatabaseURL)

	cfg.PepperFile = getEnvOrDefault("REGISTRY_PEPPER_FILE", cfg.PepperFile)

	cfg.AuthHMACSecret = getEnvOrDefault("REGISTRY_AUTH_HMAC_SECRET", cfg.AuthHMACSecret)
	cfg.AuthPublicKeyFile = getEnvOrDefault("REGISTRY_AUTH_PUBLIC_KEY_FILE", cfg.AuthPublicKeyFile)
	cfg.AuthIssuer = getEnvOrDefault("REGISTRY_AUTH_ISSUER", cfg.AuthIssuer)

	cfg.RedisURL = getEnvOrDefault("REGISTRY_REDIS_URL", cfg.RedisURL)
	cfg.AMQPURL = getEnvOrDefault("REGISTRY_AMQP_URL", cfg.AMQPURL)
	cfg.AMQPExchange = getEnvOrDefault("REGISTRY_AMQP_EXCHANGE", cfg.AMQPExchange)

	cfg.SeedClientID = getEnvOrDefault("REGISTRY_SEED_CLIENT_ID", cfg.SeedClientID)
	cfg.SeedClientName = getEnvOrDefault("REGISTRY_SEED_CLIENT_NAME", cfg.SeedClientName)
	cfg.SeedClientSecret = getEnvOrDefault("REGISTRY_SEED_CLIENT_SECRET", cfg.SeedClientSecret)

	if v := os.Getenv("REGISTRY_DOCS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnableDocs = b
			docsSet = true
		}
	}
	if !docsSet {
		cfg.EnableDocs = cfg.Env != "prod"
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unknown REGISTRY_DB_DRIVER %q (want sqlite or postgres)", cfg.DatabaseDriver)
	}
	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("REGISTRY_DB_URL is required when REGISTRY_DB_DRIVER is postgres")
	}

	return cfg, nil
}

// applyFile overlays the YAML document at path onto cfg. It reports whether
// the file set the docs toggle explicitly.
func (cfg *Config) applyFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return false, fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.Env, fc.Env)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if fc.ShutdownGracePeriod != "" {
		d, err := time.ParseDuration(fc.ShutdownGracePeriod)
		if err != nil {
			return false, fmt.Errorf("parse shutdown_grace_period in %s: %w", path, err)
		}
		cfg.ShutdownGracePeriod = d
	}

	setString(&cfg.DatabaseDriver, fc.Database.Driver)
	setString(&cfg.DatabaseFile, fc.Database.File)
	setString(&cfg.DatabaseURL, fc.Database.URL)

	setString(&cfg.PepperFile, fc.PepperFile)

	setString(&cfg.AuthHMACSecret, fc.Auth.HMACSecret)
	setString(&cfg.AuthPublicKeyFile, fc.Auth.PublicKeyFile)
	setString(&cfg.AuthIssuer, fc.Auth.Issuer)

	setString(&cfg.RedisURL, fc.RedisURL)
	setString(&cfg.AMQPURL, fc.AMQP.URL)
	setString(&cfg.AMQPExchange, fc.AMQP.Exchange)

	setString(&cfg.SeedClientID, fc.SeedClient.ID)
	setString(&cfg.SeedClientName, fc.SeedClient.Name)
	setString(&cfg.SeedClientSecret, fc.SeedClient.Secret)

	if fc.Docs != nil {
		cfg.EnableDocs = *fc.Docs
		return true, nil
	}
	return false, nil
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
