package identkit

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestConfigValidateRejectsEmptyRoutes(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"login", func(c *Config) { c.Routes.Login = "" }, "login route"},
		{"home", func(c *Config) { c.Routes.Home = "" }, "home route"},
		{"verify", func(c *Config) { c.Routes.Verify = "" }, "verify route"},
		{"ttl", func(c *Config) { c.Verification.PendingTTL = 0 }, "pending TTL"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation failure")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadConfigUsesEnvOverrides(t *testing.T) {
	t.Setenv("IDENTKIT_ROUTE_LOGIN", "/signin")
	t.Setenv("IDENTKIT_VERIFY_PENDING_TTL", "1h")
	t.Setenv("IDENTKIT_VERIFY_CLEAR_PENDING", "false")

	cfg, err := LoadConfig(context.Background())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Routes.Login != "/signin" {
		t.Fatalf("env override not applied, got %q", cfg.Routes.Login)
	}
	if cfg.Routes.Home != "/" {
		t.Fatalf("default not applied, got %q", cfg.Routes.Home)
	}
	if cfg.Verification.PendingTTL != time.Hour {
		t.Fatalf("ttl override not applied, got %v", cfg.Verification.PendingTTL)
	}
	if cfg.Verification.ClearPendingOnSuccess {
		t.Fatalf("clear-pending override not applied")
	}
}
