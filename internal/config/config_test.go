package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROJECTID", "cashflow-dev")
	t.Setenv("LOGLEVEL", "debug")
	t.Setenv("PORT", "")
	t.Setenv("DEFAULTCURRENCY", "EUR")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.ProjectID != "cashflow-dev" || cfg.LogLevel != "debug" || cfg.DefaultCurrency != "EUR" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want default 8080", cfg.Port)
	}
}

func TestNewLoadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("port = %q, want 9090 from .env", cfg.Port)
	}
}

func TestLoadLocalDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadLocal(LocalPath())
	if err != nil {
		t.Fatalf("LoadLocal returned error: %v", err)
	}
	if cfg.Profile.MonthlyIncome != "0" || !strings.HasSuffix(cfg.General.DatabasePath, filepath.Join("cashflow", "cashflow.db")) {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestSaveLocalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := DefaultLocal()
	cfg.Profile.MonthlyIncome = "3250.75"
	cfg.Profile.Currency = "EUR"

	if err := SaveLocal(path, cfg); err != nil {
		t.Fatalf("SaveLocal returned error: %v", err)
	}
	got, err := LoadLocal(path)
	if err != nil {
		t.Fatalf("LoadLocal returned error: %v", err)
	}
	if got.Profile != cfg.Profile || got.General != cfg.General {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, cfg)
	}
}

func TestLoadLocalRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[profile\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadLocal(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
