package stayauth

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by stayauth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	HTTP      HTTPConfig
	Endpoints EndpointsConfig
	Storage   StorageConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
HTTP CONFIG
====================================
*/

// HTTPConfig defines a public type used by stayauth APIs.
//
// HTTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HTTPConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

/*
====================================
ENDPOINTS CONFIG
====================================
*/

// EndpointsConfig carries the backend's auth route paths. The defaults match
// the production API; override them only against a non-standard deployment.
type EndpointsConfig struct {
	Login  string
	Signup string
	Me     string
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig defines a public type used by stayauth APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	// RedisPrefix namespaces the credential key when the Redis backend is used.
	RedisPrefix string
	// TokenTTL bounds the persisted credential's lifetime in Redis.
	// Zero keeps it until cleared.
	TokenTTL time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by stayauth APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by stayauth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration the engine starts from: production
// endpoint paths, a 15 second HTTP timeout, audit disabled.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Timeout:   15 * time.Second,
			UserAgent: "stayauth/1",
		},
		Endpoints: EndpointsConfig{
			Login:  "/users/login",
			Signup: "/users/signup",
			Me:     "/users/info",
		},
		Storage: StorageConfig{
			RedisPrefix: "sct",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a plain copy is a deep copy.
	return cfg
}

// Validate checks the configuration for values the engine cannot run with.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.BaseURL) == "" {
		return errors.New("HTTP BaseURL is required")
	}
	if c.HTTP.Timeout < 0 {
		return errors.New("HTTP Timeout must not be negative")
	}
	for _, path := range []string{c.Endpoints.Login, c.Endpoints.Signup, c.Endpoints.Me} {
		if path == "" || !strings.HasPrefix(path, "/") {
			return errors.New("endpoint paths must be non-empty and start with /")
		}
	}
	if c.Storage.TokenTTL < 0 {
		return errors.New("Storage TokenTTL must not be negative")
	}
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("Audit BufferSize must not be negative")
	}
	return nil
}
