package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 10s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Money.DefaultLocale != "en-US" {
		t.Errorf("Money.DefaultLocale = %q, want %q", cfg.Money.DefaultLocale, "en-US")
	}
	if len(cfg.Money.Locales) == 0 {
		t.Errorf("Money.Locales is empty")
	}
	if cfg.IsProduction() {
		t.Errorf("IsProduction() = true for default env %q", cfg.App.Env)
	}
}

func TestLoad_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moneyd.yaml")
	data := strings.Join([]string{
		"app:",
		"  env: production",
		"server:",
		"  port: 9090",
		"  rate_limit:",
		"    enabled: false",
		"money:",
		"  default_locale: test",
		"  locales: [de-DE]",
		"  custom:",
		"    - name: test",
		"      decimal_point: \"_\"",
		"      thousands_sep: \"-\"",
		"      grouping: [2]",
		"      symbol: \"$$\"",
		"      intl_symbol: \"CUR \"",
		"      positive_sign: \"++\"",
		"      negative_sign: \"--\"",
		"      frac_digits: 1",
		"      pos_pattern: [sign, space, value, symbol]",
		"      neg_pattern: [sign, space, value, symbol]",
	}, "\n")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}
	if !cfg.IsProduction() {
		t.Errorf("IsProduction() = false, want true")
	}
	if cfg.Server.Port != 9090 || cfg.Server.RateLimit.Enabled {
		t.Errorf("Server = %+v, want port 9090 and no rate limit", cfg.Server)
	}
	if len(cfg.Money.Custom) != 1 {
		t.Fatalf("Money.Custom = %+v, want one locale", cfg.Money.Custom)
	}
	c := cfg.Money.Custom[0]
	if c.Name != "test" || c.DecimalPoint != "_" || c.FracDigits != 1 || len(c.PosPattern) != 4 {
		t.Errorf("Money.Custom[0] = %+v", c)
	}
}

func TestLoad_env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MONEYD_SERVER_PORT", "7070")
	t.Setenv("MONEYD_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]func(*Config){
		"port":         func(c *Config) { c.Server.Port = 0 },
		"locale":       func(c *Config) { c.Money.DefaultLocale = "" },
		"installments": func(c *Config) { c.Money.MaxInstallments = 0 },
		"custom name":  func(c *Config) { c.Money.Custom = []CustomLocaleConfig{{}} },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := &Config{
				Server: ServerConfig{Port: 8080},
				Money:  MoneyConfig{DefaultLocale: "en-US", MaxInstallments: 12},
			}
			if err := c.Validate(); err != nil {
				t.Fatalf("Validate() of a valid config failed: %v", err)
			}
			mutate(c)
			if err := c.Validate(); err == nil {
				t.Errorf("Validate() did not fail")
			}
		})
	}
}
