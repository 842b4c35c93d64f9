package service

import (
	"errors"
	"time"

	"github.com/infiniteherbs/adminapi/internal/admin/domain"
	"github.com/infiniteherbs/adminapi/pkg/jwtx"
)

// ErrInvalidToken covers malformed, tampered, expired, and wrong-type
// tokens alike.
var ErrInvalidToken = errors.New("invalid_token")

// TokenService issues and validates the stateless access/refresh token
// pair. Nothing is persisted; validity is signature plus expiry.
type TokenService struct {
	Signer     jwtx.Signer
	Verifier   jwtx.Verifier
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (s *TokenService) IssueAccessToken(u domain.User) (string, error) {
	claims := jwtx.NewClaims(
		u.UserName, u.ID, jwtx.TokenTypeAccess,
		s.AccessTTL, s.Issuer, time.Now().UTC(),
	)
	return s.Signer.Sign(claims)
}

func (s *TokenService) IssueRefreshToken(u domain.User) (string, error) {
	claims := jwtx.NewClaims(
		u.UserName, u.ID, jwtx.TokenTypeRefresh,
		s.RefreshTTL, s.Issuer, time.Now().UTC(),
	)
	return s.Signer.Sign(claims)
}

// IssuePair mints the access+refresh pair returned by a successful login.
func (s *TokenService) IssuePair(u domain.User) (domain.TokenPair, error) {
	access, err := s.IssueAccessToken(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.IssueRefreshToken(u)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

// Decode verifies the signature and expiry and returns the claim set.
func (s *TokenService) Decode(raw string) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(raw)
	if err != nil {
		return jwtx.Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// Refresh validates a refresh token and mints a fresh access token with
// the same subject and user id. The refresh token itself is not rotated; a
// compromised one stays valid until its own expiry.
func (s *TokenService) Refresh(refreshRaw string) (string, error) {
	claims, err := s.Decode(refreshRaw)
	if err != nil {
		return "", err
	}

	if claims.TokenType != jwtx.TokenTypeRefresh {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	next := jwtx.NewClaims(
		claims.Subject, claims.UserID, jwtx.TokenTypeAccess,
		s.AccessTTL, s.Issuer, time.Now().UTC(),
	)
	return s.Signer.Sign(next)
}
