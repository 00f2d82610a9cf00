package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avidbase/avidbase-go/internal/constants"
)

// Claims is the decoded payload of a JWT-shaped access token.
type Claims struct {
	Subject   string                 `json:"subject,omitempty"    yaml:"subject,omitempty"`
	Issuer    string                 `json:"issuer,omitempty"     yaml:"issuer,omitempty"`
	IssuedAt  *time.Time             `json:"issued_at,omitempty"  yaml:"issued_at,omitempty"`
	ExpiresAt *time.Time             `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
	Raw       map[string]interface{} `json:"claims"               yaml:"claims"`
}

// Expired reports whether the token carries an expiry that lies before now.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

// InspectToken decodes the claims of a JWT-shaped token without verifying its
// signature. It is a display aid only; the client itself treats tokens as
// opaque and never acts on their expiry.
func InspectToken(token string) (*Claims, error) {
	mapClaims := jwt.MapClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(token, mapClaims)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, fmt.Errorf("%w: %w", constants.ErrInvalidJWTFormat, err)
		}

		return nil, fmt.Errorf("parsing token: %w", err)
	}

	claims := &Claims{Raw: map[string]interface{}(mapClaims)}

	claims.Subject, _ = mapClaims.GetSubject()
	claims.Issuer, _ = mapClaims.GetIssuer()

	if issuedAt, err := mapClaims.GetIssuedAt(); err == nil && issuedAt != nil {
		claims.IssuedAt = &issuedAt.Time
	}

	if expiresAt, err := mapClaims.GetExpirationTime(); err == nil && expiresAt != nil {
		claims.ExpiresAt = &expiresAt.Time
	}

	return claims, nil
}

// ExpiresAt returns the token's expiry claim.
func ExpiresAt(token string) (time.Time, error) {
	claims, err := InspectToken(token)
	if err != nil {
		return time.Time{}, err
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, constants.ErrNoExpirationClaim
	}

	return *claims.ExpiresAt, nil
}
