package gateAuth

import (
	"errors"
	"strings"
	"time"
)

// Config defines a public type used by gateAuth APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	App       AppConfig
	Endpoints EndpointsConfig
	Refresh   RefreshConfig
	Storage   StorageConfig
	Roles     RolesConfig
	Events    EventsConfig
	Metrics   MetricsConfig
}

/*
====================================
APP CONFIG
====================================
*/

// AppConfig defines a public type used by gateAuth APIs.
//
// AppConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AppConfig struct {
	Type    string // client application type reported to the identity endpoint
	Version string // client application version reported to the identity endpoint
}

/*
====================================
ENDPOINTS CONFIG
====================================
*/

// EndpointsConfig defines a public type used by gateAuth APIs.
//
// EndpointsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EndpointsConfig struct {
	Identity  string
	Refresh   string
	SendOTP   string
	VerifyOTP string

	// ExtraBootstrapRoutes lists additional path prefixes whose 401s must
	// never trigger a refresh attempt. The four auth endpoints above are
	// always treated as bootstrap routes.
	ExtraBootstrapRoutes []string
}

/*
====================================
REFRESH CONFIG
====================================
*/

// RefreshConfig defines a public type used by gateAuth APIs.
//
// RefreshConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RefreshConfig struct {
	// ProactiveLeeway refreshes the access token before a request when its
	// exp claim is within this window. Zero disables proactive refresh.
	ProactiveLeeway time.Duration
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig defines a public type used by gateAuth APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	RedisPrefix string
}

/*
====================================
ROLES CONFIG
====================================
*/

// RolesConfig defines a public type used by gateAuth APIs.
//
// RolesConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RolesConfig struct {
	// Priority orders the recognized roles; the first stored role matching
	// an entry wins. Entries are lowercase.
	Priority []AllowedRole
}

/*
====================================
EVENTS CONFIG
====================================
*/

// EventsConfig defines a public type used by gateAuth APIs.
//
// EventsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type EventsConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by gateAuth APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		App: AppConfig{
			Type: "gate-entry",
		},
		Endpoints: EndpointsConfig{
			Identity:  "/auth/identity",
			Refresh:   "/auth/refresh",
			SendOTP:   "/auth/otp/send",
			VerifyOTP: "/auth/otp/verify",
		},
		Refresh: RefreshConfig{
			ProactiveLeeway: 30 * time.Second,
		},
		Storage: StorageConfig{
			RedisPrefix: "ga",
		},
		Roles: RolesConfig{
			Priority: []AllowedRole{RoleGuard, RoleHubManager},
		},
		Events: EventsConfig{
			Enabled:    true,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Endpoints.ExtraBootstrapRoutes = append([]string(nil), cfg.Endpoints.ExtraBootstrapRoutes...)
	out.Roles.Priority = append([]AllowedRole(nil), cfg.Roles.Priority...)
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c Config) Validate() error {
	if strings.TrimSpace(c.App.Type) == "" {
		return errors.New("app type required")
	}

	endpoints := map[string]string{
		"identity":  c.Endpoints.Identity,
		"refresh":   c.Endpoints.Refresh,
		"sendOtp":   c.Endpoints.SendOTP,
		"verifyOtp": c.Endpoints.VerifyOTP,
	}
	for name, path := range endpoints {
		if strings.TrimSpace(path) == "" {
			return errors.New(name + " endpoint required")
		}
		if !strings.HasPrefix(path, "/") {
			return errors.New(name + " endpoint must be an absolute path")
		}
	}
	for _, route := range c.Endpoints.ExtraBootstrapRoutes {
		if !strings.HasPrefix(route, "/") {
			return errors.New("bootstrap routes must be absolute paths")
		}
	}

	if c.Refresh.ProactiveLeeway < 0 {
		return errors.New("proactive refresh leeway must not be negative")
	}
	if c.Refresh.ProactiveLeeway > time.Hour {
		return errors.New("proactive refresh leeway exceeds one hour")
	}

	if len(c.Roles.Priority) == 0 {
		return errors.New("role priority list required")
	}
	seen := make(map[AllowedRole]bool, len(c.Roles.Priority))
	for _, role := range c.Roles.Priority {
		if role == RoleNone {
			return errors.New("role priority list must not contain the empty role")
		}
		if string(role) != strings.ToLower(string(role)) {
			return errors.New("role priority entries must be lowercase")
		}
		if seen[role] {
			return errors.New("role priority list contains duplicates")
		}
		seen[role] = true
	}

	if c.Events.Enabled && c.Events.BufferSize < 0 {
		return errors.New("event buffer size must not be negative")
	}

	return nil
}
