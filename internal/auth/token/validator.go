package token

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ordersd/internal/config"
	"ordersd/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

const wellKnownJWKSPath = "/.well-known/jwks.json"

var (
	errNoSecret = errors.New("shared secret not configured")
	errNoJWKS   = errors.New("jwks not configured")
)

// Validator verifies bearer tokens and produces normalized principals.
// Two key-resolution strategies are supported: a statically configured
// shared secret for HS256 tokens, and a kid-resolved JWKS key for RS256.
type Validator struct {
	secret    []byte
	issuer    string
	audience  string
	clockSkew time.Duration
	jwks      *jwksCache
}

type Option func(*Validator)

// WithHTTPClient overrides the JWKS fetch client, mainly for tests.
func WithHTTPClient(client *http.Client) Option {
	return func(v *Validator) {
		if v.jwks != nil && client != nil {
			v.jwks.httpClient = client
		}
	}
}

func NewValidator(cfg config.Config, opts ...Option) (*Validator, error) {
	secret := strings.TrimSpace(cfg.JWTSharedSecret)
	jwksURL := strings.TrimSpace(cfg.OIDCJWKSURL)
	issuer := strings.TrimSpace(cfg.OIDCIssuerURL)
	if jwksURL == "" && issuer != "" {
		jwksURL = strings.TrimRight(issuer, "/") + wellKnownJWKSPath
	}
	if secret == "" && jwksURL == "" {
		return nil, errors.New("token validation requires JWT_SHARED_SECRET or a JWKS endpoint")
	}
	v := &Validator{
		issuer:    issuer,
		audience:  strings.TrimSpace(cfg.OIDCAudience),
		clockSkew: time.Duration(cfg.OIDCClockSkewSecs) * time.Second,
	}
	if secret != "" {
		v.secret = []byte(secret)
	}
	if jwksURL != "" {
		v.jwks = newJWKSCache(jwksURL, nil, cfg.JWKSCacheTTL, cfg.JWKSFetchTimeout)
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Authenticate validates the raw Authorization header value. All failure
// modes collapse into unauthorized errors; token internals never leak.
func (v *Validator) Authenticate(ctx context.Context, authorization string) (domain.Principal, error) {
	raw := extractBearerToken(authorization)
	if raw == "" {
		return domain.Principal{}, domain.Unauthorized("missing or malformed Authorization header")
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "RS256"}),
		jwt.WithLeeway(v.clockSkew),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}
	tok, err := jwt.Parse(raw, v.keyfunc(ctx), parserOpts...)
	if err != nil || !tok.Valid {
		return domain.Principal{}, domain.Unauthorized("invalid or expired token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Principal{}, domain.Unauthorized("invalid or expired token")
	}
	return PrincipalFromClaims(map[string]any(claims)), nil
}

// keyfunc resolves the verification key per token: the shared secret serves
// HMAC tokens, the JWKS cache serves RSA tokens by kid.
func (v *Validator) keyfunc(ctx context.Context) jwt.Keyfunc {
	return func(t *jwt.Token) (any, error) {
		switch t.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if len(v.secret) == 0 {
				return nil, errNoSecret
			}
			return v.secret, nil
		case *jwt.SigningMethodRSA:
			if v.jwks == nil {
				return nil, errNoJWKS
			}
			kid, _ := t.Header["kid"].(string)
			return v.jwks.getKey(ctx, kid)
		}
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
}

func extractBearerToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(value), "bearer ") {
		return ""
	}
	return strings.TrimSpace(value[len("bearer "):])
}
