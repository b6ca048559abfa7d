package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gemini.Model != "gemini-3-pro-preview" {
		t.Errorf("Expected default model gemini-3-pro-preview, got %s", cfg.Gemini.Model)
	}
	if cfg.App.DataDir == "" {
		t.Error("Expected data dir default to be set")
	}
}

func TestAPIKeyFromEnvironment(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	os.Setenv("GEMINI_API_KEY", "test-key-123")
	defer os.Unsetenv("GEMINI_API_KEY")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Gemini.APIKey != "test-key-123" {
		t.Errorf("Expected API key from environment, got %q", cfg.Gemini.APIKey)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got := expandPath("~/.gameday")
	want := filepath.Join(home, ".gameday")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("Expected absolute path unchanged, got %s", got)
	}
}
