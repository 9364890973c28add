package gateAuth

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
	if cfg.Endpoints.Identity == "" || cfg.Endpoints.Refresh == "" {
		t.Fatal("expected auth endpoints populated")
	}
	if len(cfg.Roles.Priority) == 0 {
		t.Fatal("expected role priority populated")
	}
}

func TestConfigValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing app type", func(c *Config) { c.App.Type = " " }, "app type"},
		{"missing endpoint", func(c *Config) { c.Endpoints.Refresh = "" }, "endpoint required"},
		{"relative endpoint", func(c *Config) { c.Endpoints.Identity = "auth/identity" }, "absolute path"},
		{"relative bootstrap route", func(c *Config) { c.Endpoints.ExtraBootstrapRoutes = []string{"bff"} }, "absolute"},
		{"negative leeway", func(c *Config) { c.Refresh.ProactiveLeeway = -time.Second }, "negative"},
		{"excessive leeway", func(c *Config) { c.Refresh.ProactiveLeeway = 2 * time.Hour }, "exceeds"},
		{"empty priority", func(c *Config) { c.Roles.Priority = nil }, "priority list required"},
		{"empty role entry", func(c *Config) { c.Roles.Priority = []AllowedRole{RoleNone} }, "empty role"},
		{"uppercase role", func(c *Config) { c.Roles.Priority = []AllowedRole{"Guard"} }, "lowercase"},
		{"duplicate role", func(c *Config) { c.Roles.Priority = []AllowedRole{RoleGuard, RoleGuard} }, "duplicates"},
		{"negative buffer", func(c *Config) { c.Events.BufferSize = -1 }, "buffer size"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigCloneIsolatesSlices(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Endpoints.ExtraBootstrapRoutes = []string{"/bff/public"}

	clone := cloneConfig(cfg)
	clone.Endpoints.ExtraBootstrapRoutes[0] = "/tampered"
	clone.Roles.Priority[0] = "tampered"

	if cfg.Endpoints.ExtraBootstrapRoutes[0] != "/bff/public" {
		t.Fatal("expected bootstrap routes isolated")
	}
	if cfg.Roles.Priority[0] != RoleGuard {
		t.Fatal("expected role priority isolated")
	}
}
