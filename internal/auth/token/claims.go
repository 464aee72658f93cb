package token

import (
	"strings"
	"time"

	"ordersd/internal/domain"
)

// NormalizeScopes merges the recognized scope encodings from a decoded token
// payload into one canonical set. Supported shapes: a space-delimited string
// under "scope", and string arrays under "permissions" or "scp". Entries may
// use ":" as a separator; it is normalized to ".". A token with none of these
// keys yields the empty set rather than an error.
func NormalizeScopes(claims map[string]any) []string {
	var scopes []string
	if raw, ok := claims["scope"].(string); ok && raw != "" {
		scopes = append(scopes, strings.Fields(raw)...)
	}
	scopes = append(scopes, stringEntries(claims["permissions"])...)
	scopes = append(scopes, stringEntries(claims["scp"])...)
	for i, s := range scopes {
		scopes[i] = strings.ReplaceAll(s, ":", ".")
	}
	return dedupeStrings(scopes)
}

// PrincipalFromClaims builds the immutable per-request Principal.
func PrincipalFromClaims(claims map[string]any) domain.Principal {
	principal := domain.Principal{
		Scopes:    NormalizeScopes(claims),
		RawClaims: claims,
	}
	if subject, _ := claims["sub"].(string); subject != "" {
		principal.Subject = subject
	}
	if issuer, _ := claims["iss"].(string); issuer != "" {
		principal.Issuer = issuer
	}
	if exp, ok := numericDate(claims["exp"]); ok {
		principal.ExpiresAt = exp
	}
	return principal
}

func stringEntries(raw any) []string {
	entries, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if s, ok := entry.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func numericDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	default:
		return time.Time{}, false
	}
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
