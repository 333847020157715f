package stayauth

import (
	"testing"
	"time"
)

func TestDefaultConfigMatchesProductionRoutes(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoints.Login != "/users/login" {
		t.Fatalf("unexpected login path %q", cfg.Endpoints.Login)
	}
	if cfg.Endpoints.Signup != "/users/signup" {
		t.Fatalf("unexpected signup path %q", cfg.Endpoints.Signup)
	}
	if cfg.Endpoints.Me != "/users/info" {
		t.Fatalf("unexpected me path %q", cfg.Endpoints.Me)
	}
	if cfg.HTTP.Timeout != 15*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTP.Timeout)
	}
	if cfg.Audit.Enabled {
		t.Fatal("audit must default to disabled")
	}
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	valid.HTTP.BaseURL = "https://api.example.com"
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cases := map[string]func(*Config){
		"missing base url":    func(c *Config) { c.HTTP.BaseURL = "" },
		"blank base url":      func(c *Config) { c.HTTP.BaseURL = "   " },
		"negative timeout":    func(c *Config) { c.HTTP.Timeout = -time.Second },
		"relative login path": func(c *Config) { c.Endpoints.Login = "users/login" },
		"empty me path":       func(c *Config) { c.Endpoints.Me = "" },
		"negative token ttl":  func(c *Config) { c.Storage.TokenTTL = -time.Minute },
	}

	for name, mutate := range cases {
		cfg := DefaultConfig()
		cfg.HTTP.BaseURL = "https://api.example.com"
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}
