package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/yashwanthsk20/insta-feed-backend/internal/validation"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// ConfigPathEnvVar overrides the yaml config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var defaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Port        string `koanf:"port" validate:"required,numeric"`
	Environment string `koanf:"environment" validate:"oneof=development production test"`

	StoreDriver string `koanf:"store_driver" validate:"oneof=mongo postgres"`
	MongoURI    string `koanf:"mongo_uri" validate:"required_if=StoreDriver mongo"`
	MongoDB     string `koanf:"mongo_db" validate:"required_if=StoreDriver mongo"`
	PostgresDSN string `koanf:"postgres_dsn" validate:"required_if=StoreDriver postgres"`

	LogLevel  string `koanf:"log_level" validate:"oneof=trace debug info warn error fatal disabled"`
	LogFormat string `koanf:"log_format" validate:"oneof=json console"`

	CORSOrigins     string        `koanf:"cors_origins"`
	RateLimitMax    int           `koanf:"rate_limit_max" validate:"gte=0"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	BodyLimit       int           `koanf:"body_limit" validate:"gt=0"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"gt=0"`
}

// IsProduction reports whether the service runs with production defaults.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func defaultConfig() Config {
	return Config{
		Port:            "3000",
		Environment:     "development",
		StoreDriver:     DriverMongo,
		MongoURI:        "mongodb://localhost:27017",
		MongoDB:         "social_feed",
		LogLevel:        "info",
		LogFormat:       "json",
		CORSOrigins:     "*",
		RateLimitMax:    100,
		RateLimitWindow: 15 * time.Minute,
		BodyLimit:       10 * 1024 * 1024,
		RequestTimeout:  5 * time.Second,
	}
}

// LoadConfig layers defaults, an optional yaml file, .env and the process
// environment, in that order of increasing priority.
func LoadConfig() (Config, error) {
	// .env is optional; real environment variables always win over it
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if verr := validation.ValidateStruct(&cfg); verr != nil {
		return Config{}, fmt.Errorf("invalid config: %w", verr)
	}
	return cfg, nil
}

// envKey maps PORT -> port, MONGO_URI -> mongo_uri and so on. Unknown
// variables are loaded too but never unmarshalled.
func envKey(key string) string {
	return strings.ToLower(key)
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
