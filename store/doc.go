// Package store provides durable persistence for the gateAuth session record.
//
// # Record layout
//
// The session is persisted as one JSON document ([Record]) under a single
// key. Absence of the key means first launch and loads as the zero-value
// record. The encoding is tolerant on read: unknown fields are ignored so
// older clients survive newer records.
//
// # Architecture boundaries
//
// This package owns the [Record] model and its persistence backends
// ([Memory], [Redis]). It does NOT decide session state, refresh tokens,
// or interpret roles — those responsibilities belong to the Manager.
//
// # What this package must NOT do
//
//   - Import gateAuth, transport, or jwt (no upward imports).
//   - Mutate a record on its own; only the Manager writes sessions.
//   - Perform network calls other than to its own storage backend.
package store
