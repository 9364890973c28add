// Package transport performs single HTTP exchanges for the gateAuth core.
//
// # Exchange model
//
// One [Request] in, one [Response] out. The transport attaches the bearer
// token, serializes JSON bodies, and reports connect/timeout/DNS failures as
// [*NetworkError]. It never retries, never refreshes tokens, and never
// interprets status codes — outcome classification belongs to the Gateway.
//
// # Architecture boundaries
//
// This package owns the wire exchange and nothing else. It has no knowledge
// of sessions, routes, or the auth state machine.
//
// # What this package must NOT do
//
//   - Import gateAuth, store, or jwt.
//   - Retry, redirect-follow across hosts, or mutate session state.
//   - Interpret response bodies beyond reading them fully.
package transport
