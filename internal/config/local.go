package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Local holds the command line tool's settings.
type Local struct {
	General GeneralConfig `toml:"general"`
	Profile ProfileConfig `toml:"profile"`
}

type GeneralConfig struct {
	DatabasePath string `toml:"database_path,omitempty"`
	LogLevel     string `toml:"log_level,omitempty"`
}

// ProfileConfig mirrors the user profile. MonthlyIncome is a decimal string so it stays exact.
type ProfileConfig struct {
	MonthlyIncome string `toml:"monthly_income"`
	Currency      string `toml:"currency"`
}

func DefaultLocal() Local {
	return Local{
		General: GeneralConfig{
			DatabasePath: filepath.Join(LocalDir(), "cashflow.db"),
			LogLevel:     "warn",
		},
		Profile: ProfileConfig{
			MonthlyIncome: "0",
			Currency:      "USD",
		},
	}
}

// LocalDir returns the XDG-compliant config directory.
func LocalDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cashflow")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cashflow")
}

func LocalPath() string {
	return filepath.Join(LocalDir(), "config.toml")
}

// LoadLocal reads the config file at path, returning defaults if it doesn't exist.
func LoadLocal(path string) (Local, error) {
	cfg := DefaultLocal()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func SaveLocal(path string, cfg Local) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
