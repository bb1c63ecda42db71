// Package http provides HTTP middleware and utilities for authentication.
package http

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// claimsKey is a context key type for storing verified token claims.
type claimsKey struct{}

// WithClaims stores the verified token claims in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithClaims(ctx context.Context, claims *jwt.RegisteredClaims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves the verified token claims from the context.
// Returns (claims, true) if present, or (nil, false) if no claims were set.
func GetClaims(ctx context.Context) (*jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.RegisteredClaims)
	return claims, ok
}
