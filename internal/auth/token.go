package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and resolves signed, time-limited access tokens. The
// secret and lifetime are fixed at construction and never change afterwards,
// so the service is safe for concurrent use.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a TokenService signing with the given secret and
// issuing tokens valid for the given lifetime.
func NewTokenService(secret string, lifetime time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), lifetime: lifetime}
}

// Issue creates a signed JWT vouching for the given subject (user ID),
// expiring after the configured lifetime.
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Resolve validates a token string and returns the subject it vouches for.
// Bad signatures, malformed payloads, missing subjects, and expired tokens
// all collapse into ErrInvalidToken; adversarial input never panics.
func (s *TokenService) Resolve(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
