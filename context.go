package gateAuth

import "context"

type deviceIDContextKey struct{}
type lastLoginUserIDContextKey struct{}

// WithDeviceID attaches a per-call device identity to ctx, overriding the
// Manager's configured provider for that call. Used by hosts that learn the
// platform device ID asynchronously after the core is built.
func WithDeviceID(ctx context.Context, deviceID string) context.Context {
	return context.WithValue(ctx, deviceIDContextKey{}, deviceID)
}

// WithLastLoginUserID attaches the previously logged-in user ID to ctx. The
// identity bootstrap forwards it so the backend can link the fresh guest
// identity to the prior account on the same device.
func WithLastLoginUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, lastLoginUserIDContextKey{}, userID)
}

func deviceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	deviceID, _ := ctx.Value(deviceIDContextKey{}).(string)
	return deviceID
}

func lastLoginUserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	userID, _ := ctx.Value(lastLoginUserIDContextKey{}).(string)
	return userID
}
