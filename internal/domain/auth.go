package domain

import (
	"context"
	"time"
)

// Principal is the normalized identity derived from a bearer token.
// It is immutable after construction and scoped to a single request.
type Principal struct {
	Subject   string
	Scopes    []string
	Issuer    string
	ExpiresAt time.Time
	RawClaims map[string]any
}

// HasScope reports whether the principal's normalized scope set contains scope.
func (p Principal) HasScope(scope string) bool {
	for _, s := range p.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Authenticator turns a raw Authorization header value into a Principal.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (Principal, error)
}
