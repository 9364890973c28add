package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token parses but carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry claim")

// Inspector defines a public type used by gateAuth APIs.
//
// Inspector instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Inspector struct {
	parser *jwt.Parser
}

// NewInspector describes the newinspector operation and its observable behavior.
//
// NewInspector may return an error when input validation, dependency calls, or security checks fail.
// NewInspector does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewInspector() *Inspector {
	return &Inspector{
		parser: jwt.NewParser(jwt.WithoutClaimsValidation()),
	}
}

// ExpiresAt describes the expiresat operation and its observable behavior.
//
// ExpiresAt may return an error when input validation, dependency calls, or security checks fail.
// ExpiresAt does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (i *Inspector) ExpiresAt(token string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// ExpiresWithin reports whether the token expires within the given leeway
// from now. Opaque or exp-less tokens report false: without a readable
// expiry there is nothing to act on proactively.
func (i *Inspector) ExpiresWithin(token string, leeway time.Duration) bool {
	exp, err := i.ExpiresAt(token)
	if err != nil {
		return false
	}
	return time.Until(exp) <= leeway
}
