package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL": "postgres://localhost/flexfume",
		"REDIS_URL":    "redis://localhost:6379",
		"JWT_SECRET":   "test-secret",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr() != ":8080" {
		t.Fatalf("addr = %q, want :8080", cfg.HTTPAddr())
	}
	if cfg.AccessTokenTTL != 24*time.Hour {
		t.Fatalf("access ttl = %v, want 24h", cfg.AccessTokenTTL)
	}
	if cfg.JWTIssuer != "flexfume-api" {
		t.Fatalf("issuer = %q", cfg.JWTIssuer)
	}
	if cfg.OTPSendMax != 3 {
		t.Fatalf("otp send max = %d, want 3", cfg.OTPSendMax)
	}
}

func TestLoadRequiresSecrets(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL": "postgres://localhost/flexfume",
		"REDIS_URL":    "redis://localhost:6379",
		"JWT_SECRET":   "",
	})
	if err == nil {
		t.Fatal("expected missing JWT_SECRET to fail")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":         "postgres://localhost/flexfume",
		"REDIS_URL":            "redis://localhost:6379",
		"JWT_SECRET":           "test-secret",
		"PORT":                 "9090",
		"ACCESS_TOKEN_TTL":     "1h",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr() != ":9090" {
		t.Fatalf("addr = %q, want :9090", cfg.HTTPAddr())
	}
	if cfg.AccessTokenTTL != time.Hour {
		t.Fatalf("access ttl = %v, want 1h", cfg.AccessTokenTTL)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
}
