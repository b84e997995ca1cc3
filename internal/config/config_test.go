package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADDR", "")
	t.Setenv("JWT_EXPIRE", "")
	t.Setenv("ENVIRONMENT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Fatalf("expected :5000, got %s", cfg.Addr)
	}
	if cfg.JWTExpire != 24*time.Hour {
		t.Fatalf("expected 24h expiry, got %s", cfg.JWTExpire)
	}
	if !cfg.Development() {
		t.Fatal("expected development mode by default")
	}
	if cfg.SSOEnabled() {
		t.Fatal("SSO should be disabled without OIDC config")
	}
}

func TestLoad_ParsesExpire(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRE", "15m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTExpire != 15*time.Minute {
		t.Fatalf("expected 15m, got %s", cfg.JWTExpire)
	}

	t.Setenv("JWT_EXPIRE", "not-a-duration")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad JWT_EXPIRE")
	}
}
