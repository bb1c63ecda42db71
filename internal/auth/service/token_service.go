package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/reybeld94/terminal-api/internal/errors"
)

// tokenService implements TokenService using HMAC-SHA256 signed JWTs.
type tokenService struct {
	secret     []byte
	issuer     string
	audience   string
	defaultTTL time.Duration
	now        func() time.Time
}

// NewTokenService creates a TokenService that signs with the given symmetric
// secret and stamps every token with the configured issuer and audience.
func NewTokenService(secret, issuer, audience string, defaultTTL time.Duration) TokenService {
	return &tokenService{
		secret:     []byte(secret),
		issuer:     issuer,
		audience:   audience,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Issue builds claims {sub, iss, aud, iat, exp} and signs them with HS256,
// returning the compact encoded token string.
func (s *tokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// Verify parses and validates the token. Signature, expiry, issuer, and
// audience mismatches all collapse into ErrUnauthorized; the cause stays in
// the chain for server-side logging.
func (s *tokenService) Verify(tokenString string) (*jwt.RegisteredClaims, error) {
	if tokenString == "" {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "missing token")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperrors.Wrapf(apperrors.ErrUnauthorized, "invalid token: %v", err)
	}

	return claims, nil
}
