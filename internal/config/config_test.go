package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Listen != ":8080" {
		t.Errorf("Expected default listen :8080, got %q", cfg.Server.Listen)
	}
	if cfg.Server.ShutdownTimeout.Std() != 10*time.Second {
		t.Errorf("Expected 10s shutdown timeout, got %v", cfg.Server.ShutdownTimeout.Std())
	}
	if cfg.Client.BaseURL != "http://127.0.0.1:8080" {
		t.Errorf("Expected default base URL, got %q", cfg.Client.BaseURL)
	}
	if cfg.Client.Retry.Attempts != 3 {
		t.Errorf("Expected 3 retry attempts, got %d", cfg.Client.Retry.Attempts)
	}
	if cfg.Client.Retry.Backoff.Std() != 100*time.Millisecond {
		t.Errorf("Expected 100ms backoff, got %v", cfg.Client.Retry.Backoff.Std())
	}
	if cfg.Client.Locale != "" {
		t.Errorf("Expected neutral locale, got %q", cfg.Client.Locale)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticklist.yaml")
	content := `
server:
  listen: ":9090"
  shutdown_timeout: 2s
client:
  locale: de
  retry:
    backoff: 250ms
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Values from the file win
	if cfg.Server.Listen != ":9090" {
		t.Errorf("Expected listen :9090, got %q", cfg.Server.Listen)
	}
	if cfg.Server.ShutdownTimeout.Std() != 2*time.Second {
		t.Errorf("Expected 2s shutdown timeout, got %v", cfg.Server.ShutdownTimeout.Std())
	}
	if cfg.Client.Locale != "de" {
		t.Errorf("Expected locale de, got %q", cfg.Client.Locale)
	}
	if cfg.Client.Retry.Backoff.Std() != 250*time.Millisecond {
		t.Errorf("Expected 250ms backoff, got %v", cfg.Client.Retry.Backoff.Std())
	}

	// Fields the file does not mention keep their defaults
	if cfg.Client.BaseURL != "http://127.0.0.1:8080" {
		t.Errorf("Expected default base URL preserved, got %q", cfg.Client.BaseURL)
	}
	if cfg.Client.Retry.Attempts != 3 {
		t.Errorf("Expected default attempts preserved, got %d", cfg.Client.Retry.Attempts)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Missing file should not error, got: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("Expected defaults for missing file, got listen %q", cfg.Server.Listen)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not, a, map]"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed config, got nil")
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server:\n  shutdown_timeout: fast\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for unparseable duration, got nil")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticklist.yaml")
	if err := os.WriteFile(path, []byte("server:\n  listen: \":9090\"\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	// Environment beats both the file and the defaults
	t.Setenv("TICKLIST_LISTEN", ":7070")
	t.Setenv("TICKLIST_BASE_URL", "http://todo.internal:7070")
	t.Setenv("TICKLIST_LOCALE", "sv")
	t.Setenv("TICKLIST_TIMEOUT", "30s")
	t.Setenv("TICKLIST_RETRY_ATTEMPTS", "5")
	t.Setenv("TICKLIST_RETRY_BACKOFF", "1s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Listen != ":7070" {
		t.Errorf("Expected env listen :7070, got %q", cfg.Server.Listen)
	}
	if cfg.Client.BaseURL != "http://todo.internal:7070" {
		t.Errorf("Expected env base URL, got %q", cfg.Client.BaseURL)
	}
	if cfg.Client.Locale != "sv" {
		t.Errorf("Expected env locale sv, got %q", cfg.Client.Locale)
	}
	if cfg.Client.Timeout.Std() != 30*time.Second {
		t.Errorf("Expected env timeout 30s, got %v", cfg.Client.Timeout.Std())
	}
	if cfg.Client.Retry.Attempts != 5 {
		t.Errorf("Expected env attempts 5, got %d", cfg.Client.Retry.Attempts)
	}
	if cfg.Client.Retry.Backoff.Std() != time.Second {
		t.Errorf("Expected env backoff 1s, got %v", cfg.Client.Retry.Backoff.Std())
	}
}

func TestEnvRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparseable duration", "TICKLIST_TIMEOUT", "soon"},
		{"non-numeric attempts", "TICKLIST_RETRY_ATTEMPTS", "many"},
		{"zero attempts", "TICKLIST_RETRY_ATTEMPTS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(""); err == nil {
				t.Errorf("Expected error for %s=%q, got nil", tt.key, tt.value)
			}
		})
	}
}
