// Package service provides token issuance and verification for the API.
package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies signed, time-bounded bearer tokens.
type TokenService interface {
	// Issue builds and signs a token for the given subject with the given
	// lifetime. A non-positive ttl falls back to the configured default.
	Issue(subject string, ttl time.Duration) (string, error)

	// Verify decodes the token and checks signature, expiry, issuer, and
	// audience. Returns ErrUnauthorized for any failure. Verification never
	// mutates state: the same valid token always yields identical claims
	// until it expires.
	Verify(token string) (*jwt.RegisteredClaims, error)
}
