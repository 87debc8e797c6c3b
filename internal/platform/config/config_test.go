package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PAYROLL_ALLOWANCES", "")
	t.Setenv("PAYROLL_DEDUCTIONS", "")
	t.Setenv("TOKEN_TTL", "")

	cfg := Load()
	if cfg.StoreDriver != StoreMemory {
		t.Fatalf("expected memory store, got %s", cfg.StoreDriver)
	}
	if cfg.PayrollAllowances != 2000 || cfg.PayrollDeductions != 500 {
		t.Fatalf("expected 2000/500 policy, got %v/%v", cfg.PayrollAllowances, cfg.PayrollDeductions)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("expected 12h token ttl, got %v", cfg.TokenTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("PAYROLL_ALLOWANCES", "1500.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("PAYROLL_RUN_INTERVAL", "not-a-duration")

	cfg := Load()
	if cfg.StoreDriver != StoreSQLite {
		t.Fatalf("expected sqlite store, got %s", cfg.StoreDriver)
	}
	if cfg.PayrollAllowances != 1500.5 {
		t.Fatalf("expected 1500.5 allowances, got %v", cfg.PayrollAllowances)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.PayrollRunInterval != 0 {
		t.Fatalf("expected invalid duration to fall back to 0, got %v", cfg.PayrollRunInterval)
	}
}

func TestValidate(t *testing.T) {
	base := Config{StoreDriver: StoreMemory, TokenTTL: time.Hour, MaxBodyBytes: 1048576}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(c *Config){
		"unknown driver":   func(c *Config) { c.StoreDriver = "oracle" },
		"postgres no url":  func(c *Config) { c.StoreDriver = StorePostgres },
		"mysql no dsn":     func(c *Config) { c.StoreDriver = StoreMySQL },
		"prod no secret":   func(c *Config) { c.Environment = "production" },
		"small body limit": func(c *Config) { c.MaxBodyBytes = 10 },
		"zero ttl":         func(c *Config) { c.TokenTTL = 0 },
		"negative limit":   func(c *Config) { c.RateLimitPerMinute = -1 },
		"bad smtp port":    func(c *Config) { c.EmailEnabled, c.SMTPPort = true, 0 },
	}
	for name, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
