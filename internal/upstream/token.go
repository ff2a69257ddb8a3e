package upstream

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("upstream: missing bearer token")
	ErrTokenExpired = errors.New("upstream: bearer token expired")
)

// ScreenToken does a cheap client-side sanity pass over the bearer token the
// storefront forwards: well-formed JWT, not past its exp claim. Signature
// verification stays with the platform; we only avoid burning an upstream
// round-trip on a token that is guaranteed to be rejected.
func ScreenToken(token string) error {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return ErrNoToken
	}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// opaque (non-JWT) tokens pass through; the platform decides
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(time.Now()) {
		return ErrTokenExpired
	}
	return nil
}

// BearerFromHeader extracts the raw token from an Authorization header value.
func BearerFromHeader(h string) string {
	h = strings.TrimSpace(h)
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
