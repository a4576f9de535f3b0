package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.AccessTokenTTL() != time.Hour {
		t.Fatalf("AccessTokenTTL: %v", cfg.AccessTokenTTL())
	}
	if cfg.Analytics.CacheTTLSeconds != 300 {
		t.Fatalf("cache ttl: %d", cfg.Analytics.CacheTTLSeconds)
	}
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "regula.yaml")
	body := `
http_addr: ":7000"
timezone: "UTC"
db:
  driver: sqlite
  sqlite_path: /tmp/regula-test.db
analytics:
  base_url: http://analytics.local
  timeout_ms: 1500
allowed_origins:
  - https://app.regula.dev
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ANALYTICS_TIMEOUT_MS", "2500")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")

	cfg, err := LoadConfig(logger.Nop())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.HTTPAddr != ":7000" || cfg.DB.Driver != "sqlite" || cfg.DB.SQLitePath != "/tmp/regula-test.db" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Analytics.BaseURL != "http://analytics.local" || cfg.Analytics.TimeoutMS != 2500 {
		t.Fatalf("analytics: %+v", cfg.Analytics)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://app.regula.dev" {
		t.Fatalf("origins: %v", cfg.AllowedOrigins)
	}
	if cfg.Otel.SampleRatio != 0.5 {
		t.Fatalf("sample ratio: %v", cfg.Otel.SampleRatio)
	}
}

func TestLoadConfigRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("REGULA_TIMEZONE", "Mars/Olympus_Mons")
	if _, err := LoadConfig(logger.Nop()); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}
