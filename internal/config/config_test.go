package config

import (
	"testing"
	"time"

	"github.com/hucklog/ultimate-stats/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected app env: %q", cfg.AppEnv)
	}
	if cfg.ServiceName != "ultimate-stats-api" {
		t.Fatalf("unexpected service name: %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %q", cfg.HTTPAddr)
	}
	if !cfg.SwaggerEnabled {
		t.Fatal("swagger should default to enabled outside prod")
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache ttl: %v", cfg.CacheTTL)
	}
	if cfg.RecomputeMaxWorkers != 8 {
		t.Fatalf("unexpected recompute workers: %d", cfg.RecomputeMaxWorkers)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %v", cfg.LogLevel)
	}
}

func TestLoad_ProdDisablesSwaggerByDefault(t *testing.T) {
	t.Setenv("APP_ENV", "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.SwaggerEnabled {
		t.Fatal("swagger should default to disabled in prod")
	}
}

func TestLoad_InvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "staging-2")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSN(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when UPTRACE_ENABLED without DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_UserDirCircuitBounds(t *testing.T) {
	t.Setenv("USERDIR_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero failure count")
	}
}
