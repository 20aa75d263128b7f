package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "topsecret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.SessionBackend != BackendMemory {
		t.Errorf("Expected default backend memory, got %q", cfg.SessionBackend)
	}
	if cfg.LLMTimeout != 5*time.Second {
		t.Errorf("Expected default LLM timeout 5s, got %v", cfg.LLMTimeout)
	}
	if cfg.MinReplyLatency != time.Second {
		t.Errorf("Expected default pacing floor 1s, got %v", cfg.MinReplyLatency)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for missing API_KEY")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("API_KEY", "topsecret")
	t.Setenv("SESSION_BACKEND", "dynamo")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error for unknown session backend")
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("SOME_DURATION", "250ms")

	if got := getEnvDuration("SOME_DURATION", time.Second); got != 250*time.Millisecond {
		t.Errorf("Expected 250ms, got %v", got)
	}
	if got := getEnvDuration("MISSING_DURATION", time.Second); got != time.Second {
		t.Errorf("Expected fallback 1s, got %v", got)
	}
	t.Setenv("BAD_DURATION", "soon")
	if got := getEnvDuration("BAD_DURATION", time.Second); got != time.Second {
		t.Errorf("Expected fallback on parse error, got %v", got)
	}
}

func TestHasGroqKeys(t *testing.T) {
	cfg := &Config{GroqAPIKeys: []string{"", "  "}}
	if cfg.HasGroqKeys() {
		t.Error("Blank keys must not count as configured")
	}
	cfg.GroqAPIKeys = []string{"", "gsk_live"}
	if !cfg.HasGroqKeys() {
		t.Error("Expected configured key to be detected")
	}
}
