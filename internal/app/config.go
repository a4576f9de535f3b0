package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	dbpkg "github.com/yungbote/regula-backend/internal/data/db"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
	"github.com/yungbote/regula-backend/internal/utils"
)

type AnalyticsConfig struct {
	BaseURL         string `yaml:"base_url"`
	APIKey          string `yaml:"api_key"`
	TimeoutMS       int    `yaml:"timeout_ms"`
	MaxRetries      int    `yaml:"max_retries"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	HTTPAddr              string          `yaml:"http_addr"`
	LogMode               string          `yaml:"log_mode"`
	AllowedOrigins        []string        `yaml:"allowed_origins"`
	DB                    dbpkg.Config    `yaml:"db"`
	JWTSecretKey          string          `yaml:"jwt_secret_key"`
	AccessTokenTTLSeconds int             `yaml:"access_token_ttl"`
	Timezone              string          `yaml:"timezone"`
	RedisAddr             string          `yaml:"redis_addr"`
	Analytics             AnalyticsConfig `yaml:"analytics"`
	Otel                  OtelConfig      `yaml:"otel"`
}

func defaultConfig() Config {
	return Config{
		HTTPAddr:              ":8080",
		LogMode:               "development",
		DB:                    dbpkg.Config{Driver: dbpkg.DialectPostgres, Host: "localhost", Port: "5432", SQLitePath: "regula.db"},
		JWTSecretKey:          "defaultsecret",
		AccessTokenTTLSeconds: 3600,
		Timezone:              "UTC",
		Analytics:             AnalyticsConfig{TimeoutMS: 5000, MaxRetries: 2, CacheTTLSeconds: 300},
		Otel:                  OtelConfig{ServiceName: "regula", SampleRatio: 0.1},
	}
}

// LoadConfig reads CONFIG_FILE when set and then applies environment
// overrides. Missing keys keep their defaults.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.HTTPAddr = utils.GetEnv("HTTP_ADDR", cfg.HTTPAddr, log)
	cfg.LogMode = utils.GetEnv("LOG_MODE", cfg.LogMode, log)
	if origins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}

	cfg.DB.Driver = utils.GetEnv("DB_DRIVER", cfg.DB.Driver, log)
	cfg.DB.Host = utils.GetEnv("POSTGRES_HOST", cfg.DB.Host, log)
	cfg.DB.Port = utils.GetEnv("POSTGRES_PORT", cfg.DB.Port, log)
	cfg.DB.User = utils.GetEnv("POSTGRES_USER", cfg.DB.User, log)
	cfg.DB.Password = utils.GetEnv("POSTGRES_PASSWORD", cfg.DB.Password, log)
	cfg.DB.Name = utils.GetEnv("POSTGRES_NAME", cfg.DB.Name, log)
	cfg.DB.SSLMode = utils.GetEnv("POSTGRES_SSLMODE", cfg.DB.SSLMode, log)
	cfg.DB.SQLitePath = utils.GetEnv("SQLITE_PATH", cfg.DB.SQLitePath, log)

	cfg.JWTSecretKey = utils.GetEnv("JWT_SECRET_KEY", cfg.JWTSecretKey, log)
	cfg.AccessTokenTTLSeconds = utils.GetEnvAsInt("ACCESS_TOKEN_TTL", cfg.AccessTokenTTLSeconds, log)
	cfg.Timezone = utils.GetEnv("REGULA_TIMEZONE", cfg.Timezone, log)
	cfg.RedisAddr = utils.GetEnv("REDIS_ADDR", cfg.RedisAddr, log)

	cfg.Analytics.BaseURL = utils.GetEnv("ANALYTICS_BASE_URL", cfg.Analytics.BaseURL, log)
	cfg.Analytics.APIKey = utils.GetEnv("ANALYTICS_API_KEY", cfg.Analytics.APIKey, log)
	cfg.Analytics.TimeoutMS = utils.GetEnvAsInt("ANALYTICS_TIMEOUT_MS", cfg.Analytics.TimeoutMS, log)
	cfg.Analytics.MaxRetries = utils.GetEnvAsInt("ANALYTICS_MAX_RETRIES", cfg.Analytics.MaxRetries, log)
	cfg.Analytics.CacheTTLSeconds = utils.GetEnvAsInt("ANALYTICS_CACHE_TTL_SECONDS", cfg.Analytics.CacheTTLSeconds, log)

	cfg.Otel.Enabled = utils.GetEnvAsBool("OTEL_ENABLED", cfg.Otel.Enabled, log)
	cfg.Otel.ServiceName = utils.GetEnv("OTEL_SERVICE_NAME", cfg.Otel.ServiceName, log)
	cfg.Otel.Environment = utils.GetEnv("OTEL_ENVIRONMENT", cfg.Otel.Environment, log)
	cfg.Otel.Endpoint = utils.GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Otel.Endpoint, log)
	cfg.Otel.Headers = utils.GetEnv("OTEL_EXPORTER_OTLP_HEADERS", cfg.Otel.Headers, log)
	cfg.Otel.Insecure = utils.GetEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Otel.Insecure, log)
	if raw := utils.GetEnv("OTEL_SAMPLER_RATIO", "", log); raw != "" {
		ratio, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Config{}, fmt.Errorf("OTEL_SAMPLER_RATIO: %w", err)
		}
		cfg.Otel.SampleRatio = ratio
	}

	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLSeconds) * time.Second
}

// Location resolves Timezone; calendar-day metrics are bucketed in it.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("REGULA_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
