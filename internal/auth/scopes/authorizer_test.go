package scopes

import (
	"testing"

	"ordersd/internal/domain"
)

func TestAuthorize(t *testing.T) {
	authorizer := NewAuthorizer()
	tests := []struct {
		name     string
		scopes   []string
		required []string
		allowed  bool
		reason   string
	}{
		{
			name:     "exact match",
			scopes:   []string{"orders.read"},
			required: []string{"orders.read"},
			allowed:  true,
		},
		{
			name:     "any of several satisfies",
			scopes:   []string{"orders.write"},
			required: []string{"orders.read", "orders.write"},
			allowed:  true,
		},
		{
			name:     "no intersection denies",
			scopes:   []string{"vendors.read"},
			required: []string{"orders.read", "orders.write"},
			allowed:  false,
			reason:   "required scopes: orders.read, orders.write",
		},
		{
			name:     "empty claim set denies",
			scopes:   nil,
			required: []string{"orders.read"},
			allowed:  false,
			reason:   "required scopes: orders.read",
		},
		{
			name:     "empty requirement always authorizes",
			scopes:   nil,
			required: nil,
			allowed:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := domain.Principal{Subject: "user-1", Scopes: tt.scopes}
			decision := authorizer.Authorize(principal, Requirement{Required: tt.required})
			if decision.Allowed != tt.allowed {
				t.Fatalf("allowed = %v, want %v", decision.Allowed, tt.allowed)
			}
			if decision.Reason != tt.reason {
				t.Fatalf("reason = %q, want %q", decision.Reason, tt.reason)
			}
		})
	}
}

func TestAuthorize_DoesNotMutateClaims(t *testing.T) {
	authorizer := NewAuthorizer()
	principal := domain.Principal{Subject: "user-1", Scopes: []string{"orders.read"}}
	_ = authorizer.Authorize(principal, Requirement{Required: []string{"orders.write"}})
	if len(principal.Scopes) != 1 || principal.Scopes[0] != "orders.read" {
		t.Fatalf("principal mutated: %v", principal.Scopes)
	}
}
