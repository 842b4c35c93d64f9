package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/infiniteherbs/adminapi/internal/admin/service"
	"github.com/infiniteherbs/adminapi/pkg/httpx"
	"github.com/infiniteherbs/adminapi/pkg/slogx"
)

// AuthHandler serves login, refresh, and registration.
type AuthHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// HandleLogin serves POST /api/auth/login.
//
// Bad credentials return 401 without distinguishing unknown-username from
// wrong-password; an inactive account returns 403 before any token is
// minted.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.UserService.Authenticate(ctx, req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httpx.WriteError(w, http.StatusUnauthorized, "incorrect username or password")
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !user.IsActive {
		httpx.WriteError(w, http.StatusForbidden, "inactive user")
		return
	}

	pair, err := h.TokenService.IssuePair(user)
	if err != nil {
		log.Error("token issuance failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal error")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		User:         toUserResponse(user),
	})
}

// HandleRefresh serves POST /api/auth/refresh.
//
// Only a valid, unexpired token carrying type "refresh" with subject and
// user id present is accepted; everything else is 401.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RefreshToken == "" {
		httpx.WriteError(w, http.StatusUnprocessableEntity, "refreshToken is required")
		return
	}

	access, err := h.TokenService.Refresh(req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, RefreshResponse{
		AccessToken: access,
		TokenType:   "bearer",
	})
}

// HandleRegister serves POST /api/auth/register. Same contract as user
// creation: 422 on validation failure, 400 on a duplicate username or
// email, 201 with the public representation on success.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	createUser(w, r, h.UserService)
}
