package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalid reports a malformed token, a bad signature, or an
	// unexpected signing algorithm.
	ErrInvalid = errors.New("jwtx: invalid token")

	// ErrExpired reports a token whose exp claim has passed.
	ErrExpired = errors.New("jwtx: token expired")
)

// Signer mints signed tokens from a claim set.
type Signer interface {
	Sign(claims Claims) (string, error)
}

// Verifier parses a signed token and validates signature and expiry.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HS256 signs and verifies tokens with a shared secret. It implements both
// Signer and Verifier.
type HS256 struct {
	secret []byte
}

func NewHS256(secret []byte) *HS256 {
	return &HS256{secret: secret}
}

func (h *HS256) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// Verify rejects tokens signed with any algorithm other than HS256, so a
// crafted "none" or asymmetric header can never pass.
func (h *HS256) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(
		raw,
		&claims,
		func(t *jwt.Token) (any, error) { return h.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	if !token.Valid {
		return Claims{}, ErrInvalid
	}
	return claims, nil
}
