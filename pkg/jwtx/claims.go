package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token type discriminators carried in the "type" claim. The refresh
// endpoint refuses anything that is not a refresh token.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims is the signed claim set for both access and refresh tokens. The
// subject is the username; UserID carries the immutable record id so the
// pair survives username lookups on either side.
type Claims struct {
	jwt.RegisteredClaims

	UserID    string `json:"user_id,omitempty"`
	TokenType string `json:"type,omitempty"`
}

// NewClaims builds a minimally-correct claim set expiring after ttl.
func NewClaims(
	subject, userID, tokenType string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		TokenType: tokenType,
	}
}
