// Package jwt implements client-side claim inspection for stored access
// tokens.
//
// # Why unverified
//
// The client holds no signing keys; verification happens server-side. This
// package only peeks at the registered claims of a token the backend issued,
// so the Manager can refresh proactively instead of spending a request on a
// guaranteed 401.
//
// # Architecture boundaries
//
// This package owns claim parsing and expiry arithmetic. Refresh policy —
// when to act on an expiring token — belongs to the Manager.
//
// # What this package must NOT do
//
//   - Import gateAuth, store, or transport.
//   - Treat an unparseable (opaque) token as an error condition; opaque
//     tokens simply opt out of proactive refresh.
//   - Verify signatures or make trust decisions.
package jwt
