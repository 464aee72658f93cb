// Package scopes decides whether a principal's normalized scope set satisfies
// a route's declared requirement. The authorizer is pure: it never logs,
// performs I/O, or mutates its inputs.
package scopes

import (
	"strings"

	"ordersd/internal/domain"
)

// Requirement is attached to a route at registration time. Policy is ANY_OF:
// one overlapping scope authorizes; an empty requirement always authorizes.
type Requirement struct {
	Required []string
}

func (r Requirement) String() string {
	return strings.Join(r.Required, ", ")
}

// Decision is the outcome of one authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

type Authorizer struct{}

func NewAuthorizer() *Authorizer {
	return &Authorizer{}
}

func (a *Authorizer) Authorize(principal domain.Principal, req Requirement) Decision {
	if len(req.Required) == 0 {
		return Decision{Allowed: true}
	}
	for _, scope := range req.Required {
		if principal.HasScope(scope) {
			return Decision{Allowed: true}
		}
	}
	return Decision{Allowed: false, Reason: "required scopes: " + req.String()}
}
