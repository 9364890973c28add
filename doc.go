// Package gateAuth provides the authentication and session lifecycle core for
// gate-entry client applications: guest/user token management, single-flight
// token refresh, 401-driven retry with outage detection, and a consistent
// session state machine exposed to the host application.
//
// The package is designed for interleaved asynchronous callers: Manager and
// Gateway methods are safe to call from multiple goroutines after
// initialization through [Builder.Build].
//
// # Architecture boundaries
//
// gateAuth is the public surface. It exposes [Manager], [Gateway], [Builder],
// [Config], and value types (AuthStatus, AllowedRole, SessionEvent,
// MetricsSnapshot). Persistence lives in store/, the HTTP exchange in
// transport/, and token claim inspection in jwt/. The metrics exporters under
// metrics/export/ import gateAuth; gateAuth never imports them back (no
// import cycles).
//
// # What this package must NOT do
//
//   - Render UI, navigate, or style anything. The host consumes [AuthStatus],
//     session events, and the one-shot session-expired flag.
//   - Call the Transport directly from business code paths. Every outgoing
//     authenticated call goes through [Gateway.Send].
//   - Log out on a network outage. [ErrServerUnavailable] is a recoverable
//     condition and must never be diagnosed as an expired session.
//
// # Concurrency contract
//
// At most one refresh call is in flight at any time; concurrent callers share
// the in-flight result. The guest-identity bootstrap runs at most once per
// empty session regardless of how many callers race into it. Logout is
// idempotent: simultaneous triggers produce exactly one state transition and
// one storage write.
package gateAuth
