// Package auth issues and validates dashboard session tokens.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenTTL = 24 * time.Hour

// SessionClaims represents the claims in a dashboard session token.
type SessionClaims struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates session tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates an issuer. An empty secret is rejected so a missing
// configuration cannot silently produce forgeable tokens.
func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("session token secret is required")
	}
	return &TokenIssuer{secret: []byte(secret)}, nil
}

// GenerateSessionToken issues a token bound to a dashboard session.
func (i *TokenIssuer) GenerateSessionToken(sessionID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(sessionTokenTTL)
	claims := &SessionClaims{
		SessionID: sessionID,
		Role:      "dashboard",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateToken validates a session token and returns its claims.
func (i *TokenIssuer) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}
