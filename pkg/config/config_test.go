package config

import (
	"strings"
	"testing"
	"time"
)

func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HUB_URL", "http://hub.internal/api/galaxy")
	t.Setenv("JWT_SECRET", "an-adequately-long-signing-secret-123")
}

func TestLoadDefaults(t *testing.T) {
	validEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenPort != 8080 {
		t.Errorf("got port %d", cfg.ListenPort)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("got expiry %v", cfg.JWTExpiry)
	}
	if cfg.Polling.ModalInterval != 500*time.Millisecond {
		t.Errorf("got modal interval %v", cfg.Polling.ModalInterval)
	}
	if cfg.Polling.PassiveInterval != 10*time.Second {
		t.Errorf("got passive interval %v", cfg.Polling.PassiveInterval)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("got shutdown timeout %v", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "info" || !cfg.LogJSON {
		t.Errorf("got logging config %q json=%v", cfg.LogLevel, cfg.LogJSON)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	validEnv(t)
	t.Setenv("LISTEN_PORT", "9000")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("POLL_MODAL_INTERVAL", "250ms")
	t.Setenv("LOG_JSON", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenPort != 9000 {
		t.Errorf("got port %d", cfg.ListenPort)
	}
	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("got expiry %v", cfg.JWTExpiry)
	}
	if cfg.Polling.ModalInterval != 250*time.Millisecond {
		t.Errorf("got modal interval %v", cfg.Polling.ModalInterval)
	}
	if cfg.LogJSON {
		t.Error("expected LOG_JSON=false to disable JSON logging")
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("HUB_URL", "http://hub.internal/api/galaxy")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("expected JWT_SECRET error, got %v", err)
	}
}

func TestValidateRejectsShortSecret(t *testing.T) {
	cfg := LoadWithDefaults()
	cfg.JWTSecret = "too-short"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "32 characters") {
		t.Errorf("expected length error, got %v", err)
	}
}

func TestValidateRejectsNonPositiveIntervals(t *testing.T) {
	cfg := LoadWithDefaults()
	cfg.Polling.ModalInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero modal interval")
	}
}

func TestListenAddr(t *testing.T) {
	cfg := &Config{ListenHost: "127.0.0.1", ListenPort: 8443}
	if got := cfg.ListenAddr(); got != "127.0.0.1:8443" {
		t.Errorf("got %q", got)
	}
}
