package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the subset of access-token claims the client cares about.
// The signature is the backend's business; the client only introspects.
type TokenClaims struct {
	UserID    int    `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// InspectToken parses an access token without verifying its signature.
// Used for diagnostics (who am I, when does this expire), never for trust
// decisions: the backend rejects bad tokens with a 401 either way.
func InspectToken(tokenStr string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims); err != nil {
		return nil, fmt.Errorf("parsing access token: %w", err)
	}
	return claims, nil
}

// Expiry returns the token expiry, or the zero time when the claim is absent.
func (c *TokenClaims) Expiry() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}
