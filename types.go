package gateAuth

import (
	"context"

	"github.com/gatentry/gateAuth/store"
)

// AuthStatus is the derived session phase. It is a pure function of the
// persisted [store.Record] plus the restored flag and is never persisted
// itself.
//
//	Docs: docs/lifecycle.md
type AuthStatus string

const (
	// StatusLoading is an exported constant or variable used by the session core.
	StatusLoading AuthStatus = "loading"
	// StatusGuest is an exported constant or variable used by the session core.
	StatusGuest AuthStatus = "guest"
	// StatusAuthenticated is an exported constant or variable used by the session core.
	StatusAuthenticated AuthStatus = "authenticated"
	// StatusUnauthenticated is an exported constant or variable used by the session core.
	StatusUnauthenticated AuthStatus = "unauthenticated"
)

// AllowedRole is the closed set of roles the client UI recognizes. It is
// computed from the stored role list by priority order; RoleNone is a valid,
// expected outcome (the caller blocks the screen), not an error.
type AllowedRole string

const (
	// RoleNone is an exported constant or variable used by the session core.
	RoleNone AllowedRole = ""
	// RoleGuard is an exported constant or variable used by the session core.
	RoleGuard AllowedRole = "guard"
	// RoleHubManager is an exported constant or variable used by the session core.
	RoleHubManager AllowedRole = "hub_manager"
)

// TokenStore is the durable persistence contract the lifecycle core requires.
// A missing record loads as the zero value (first launch). Only the Manager
// writes through this interface.
type TokenStore interface {
	Load(ctx context.Context) (store.Record, error)
	Save(ctx context.Context, record store.Record) error
	Clear(ctx context.Context) error
}

// DeviceIDProvider supplies the stable device identity sent with the guest
// identity bootstrap. Hosts typically bridge a platform device ID; the
// Builder installs a process-lifetime random UUID when none is given.
type DeviceIDProvider func() string
