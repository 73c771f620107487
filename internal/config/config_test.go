package config

import "testing"

func TestLoadIncludesPipelineDefaults(t *testing.T) {
	t.Setenv("QDRANT_URL", "")
	t.Setenv("QDRANT_COLLECTION", "")
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("VERIFY_WORKERS", "")
	t.Setenv("API_RATE_LIMIT_RPS", "")

	cfg := Load()
	if cfg.QdrantURL != "http://localhost:6333" {
		t.Fatalf("expected default qdrant url, got %q", cfg.QdrantURL)
	}
	if cfg.QdrantCollection != "legal_units" {
		t.Fatalf("expected default collection legal_units, got %q", cfg.QdrantCollection)
	}
	if cfg.NATSSubject != "legal.audit.verification" {
		t.Fatalf("expected default audit subject, got %q", cfg.NATSSubject)
	}
	if cfg.VerifyWorkers != 4 {
		t.Fatalf("expected default verify workers 4, got %d", cfg.VerifyWorkers)
	}
	if cfg.APIRateLimitRPS != 0 {
		t.Fatalf("expected rate limiting off by default, got %f", cfg.APIRateLimitRPS)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("REDIS_ADDR", "localhost:6380")
	t.Setenv("VERIFY_WORKERS", "8")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("API_RATE_LIMIT_BURST", "10")
	t.Setenv("LLM_TIMEOUT_SECONDS", "bogus")

	cfg := Load()
	if cfg.RedisAddr != "localhost:6380" {
		t.Fatalf("expected redis addr override, got %q", cfg.RedisAddr)
	}
	if cfg.VerifyWorkers != 8 {
		t.Fatalf("expected verify workers 8, got %d", cfg.VerifyWorkers)
	}
	if cfg.APIRateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit 2.5, got %f", cfg.APIRateLimitRPS)
	}
	if cfg.APIRateLimitBurst != 10 {
		t.Fatalf("expected burst 10, got %d", cfg.APIRateLimitBurst)
	}
	if cfg.LLMTimeoutSeconds != 60 {
		t.Fatalf("unparseable int must fall back to default, got %d", cfg.LLMTimeoutSeconds)
	}
}
