package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppPort != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.AppPort)
	}
	if cfg.Storage != StoragePostgres {
		t.Fatalf("expected postgres storage by default, got %q", cfg.Storage)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected cache disabled by default, got %q", cfg.RedisAddr)
	}
	if cfg.MigrationDir != "migrations" || cfg.SeedDir != "seeds" {
		t.Fatalf("unexpected directories: %q %q", cfg.MigrationDir, cfg.SeedDir)
	}
	if cfg.ReferenceCacheTTL != 15*time.Minute {
		t.Fatalf("unexpected cache TTL: %v", cfg.ReferenceCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FILMGRAPH_PORT", "9090")
	t.Setenv("FILMGRAPH_STORAGE", StorageMemory)
	t.Setenv("FILMGRAPH_REDIS_ADDR", "localhost:6379")
	t.Setenv("FILMGRAPH_REFERENCE_CACHE_TTL", "30s")
	t.Setenv("FILMGRAPH_RATE_LIMIT_REQUESTS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppPort != 9090 {
		t.Fatalf("expected port override, got %d", cfg.AppPort)
	}
	if cfg.Storage != StorageMemory {
		t.Fatalf("expected memory storage, got %q", cfg.Storage)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected redis addr override, got %q", cfg.RedisAddr)
	}
	if cfg.ReferenceCacheTTL != 30*time.Second {
		t.Fatalf("expected TTL override, got %v", cfg.ReferenceCacheTTL)
	}
	if cfg.RateLimitRequests != 5 {
		t.Fatalf("expected rate limit override, got %d", cfg.RateLimitRequests)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("FILMGRAPH_PORT", "not-a-number")
	t.Setenv("FILMGRAPH_REFERENCE_CACHE_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AppPort != 8080 {
		t.Fatalf("expected fallback port, got %d", cfg.AppPort)
	}
	if cfg.ReferenceCacheTTL != 15*time.Minute {
		t.Fatalf("expected fallback TTL, got %v", cfg.ReferenceCacheTTL)
	}
}
