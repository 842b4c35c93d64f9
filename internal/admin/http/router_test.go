package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/infiniteherbs/adminapi/internal/admin/service"
	"github.com/infiniteherbs/adminapi/internal/admin/store/drivers/sqlite"
	"github.com/infiniteherbs/adminapi/pkg/cryptox"
	"github.com/infiniteherbs/adminapi/pkg/jwtx"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "adminapi-http-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "test.db"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	signer := jwtx.NewHS256([]byte("test-secret"))

	r := NewRouter("Admin App API", "test", []string{"http://localhost:3000"}, st, logger)
	r.UserService = &service.UserService{Store: st}
	r.TokenService = &service.TokenService{
		Signer:     signer,
		Verifier:   signer,
		Issuer:     "adminapi-test",
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
	r.ApplyRoutes()
	return r
}

func doJSON(t *testing.T, router *Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func registerBody(userName, email string) map[string]any {
	return map[string]any{
		"userName":  userName,
		"email":     email,
		"firstName": "Alice",
		"lastName":  "Smith",
		"password":  "secret1",
	}
}

func TestRegisterLoginRefreshFlow(t *testing.T) {
	router := newTestRouter(t)

	body := registerBody("alice", "a@x.com")
	body["isActive"] = true

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[UserResponse](t, rec)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "alice", created.UserName)
	require.True(t, created.IsActive)

	// The hash must never appear anywhere in a response body.
	require.NotContains(t, rec.Body.String(), "hashedPassword")
	require.NotContains(t, rec.Body.String(), "argon2id")

	t.Run("login with correct password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login",
			map[string]string{"userName": "alice", "password": "secret1"})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeBody[LoginResponse](t, rec)
		require.NotEmpty(t, resp.AccessToken)
		require.NotEmpty(t, resp.RefreshToken)
		require.Equal(t, "bearer", resp.TokenType)
		require.Equal(t, created.ID, resp.User.ID)
		require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

		t.Run("refresh with refresh token", func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/auth/refresh",
				map[string]string{"refreshToken": resp.RefreshToken})
			require.Equal(t, http.StatusOK, rec.Code)

			refreshed := decodeBody[RefreshResponse](t, rec)
			require.NotEmpty(t, refreshed.AccessToken)
			require.Equal(t, "bearer", refreshed.TokenType)
		})

		t.Run("refresh rejects access token", func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/auth/refresh",
				map[string]string{"refreshToken": resp.AccessToken})
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	})

	t.Run("login with wrong password", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login",
			map[string]string{"userName": "alice", "password": "wrong"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("login with unknown username looks the same", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/login",
			map[string]string{"userName": "nobody", "password": "secret1"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("refresh rejects garbage", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/refresh",
			map[string]string{"refreshToken": "not-a-token"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRegister_DefaultsAndInactiveLogin(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody("alice", "a@x.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[UserResponse](t, rec)
	require.Equal(t, "user", created.Role, "role defaults to user")
	require.False(t, created.IsActive, "isActive defaults to false")

	// Correct credentials for an inactive account yield 403, not tokens.
	rec = doJSON(t, router, http.MethodPost, "/api/auth/login",
		map[string]string{"userName": "alice", "password": "secret1"})
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.NotContains(t, rec.Body.String(), "accessToken")
}

func TestRegister_Conflicts(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody("alice", "a@x.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("duplicate username regardless of email", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody("alice", "other@x.com"))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "username already registered")
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/auth/register", registerBody("bob", "a@x.com"))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "email already registered")
	})
}

func TestRegister_Validation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"short username", func(b map[string]any) { b["userName"] = "ab" }},
		{"long username", func(b map[string]any) { b["userName"] = string(make([]byte, 51)) }},
		{"invalid email", func(b map[string]any) { b["email"] = "not-an-email" }},
		{"short first name", func(b map[string]any) { b["firstName"] = "A" }},
		{"short password", func(b map[string]any) { b["password"] = "12345" }},
		{"unknown role", func(b map[string]any) { b["role"] = "superuser" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := registerBody("alice", "a@x.com")
			tt.mutate(body)

			rec := doJSON(t, router, http.MethodPost, "/api/auth/register", body)
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUsersCRUD(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/users", registerBody("alice", "a@x.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[UserResponse](t, rec)

	t.Run("get by id", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/users/"+created.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeBody[UserResponse](t, rec)
		require.Equal(t, created.ID, got.ID)
	})

	t.Run("get missing id", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/users/missing", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("partial update", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/api/users/"+created.ID,
			map[string]any{"email": "new@x.com"})
		require.Equal(t, http.StatusOK, rec.Code)

		updated := decodeBody[UserResponse](t, rec)
		require.Equal(t, "new@x.com", updated.Email)
		require.Equal(t, created.FirstName, updated.FirstName, "unsupplied fields unchanged")
		require.Equal(t, created.Role, updated.Role)
		require.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updatedAt bumped")
		require.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
	})

	t.Run("update missing id", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/api/users/missing",
			map[string]any{"email": "x@x.com"})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update validation", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/api/users/"+created.ID,
			map[string]any{"role": "superuser"})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("delete then delete again", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/api/users/"+created.ID, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, rec.Body.String())

		rec = doJSON(t, router, http.MethodDelete, "/api/users/"+created.ID, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUsersList_Pagination(t *testing.T) {
	router := newTestRouter(t)

	for i := 0; i < 5; i++ {
		rec := doJSON(t, router, http.MethodPost, "/api/users",
			registerBody(fmt.Sprintf("user%d", i), fmt.Sprintf("user%d@x.com", i)))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[[]UserResponse](t, rec)
	require.Len(t, all, 5)

	rec = doJSON(t, router, http.MethodGet, "/api/users?skip=2&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeBody[[]UserResponse](t, rec)
	require.Len(t, page, 2)
	require.Equal(t, all[2].ID, page[0].ID)

	// Hash leakage check over the whole listing.
	require.NotContains(t, rec.Body.String(), "argon2id")
}

func TestSystemEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "running")

	rec = doJSON(t, router, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "healthy")
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("unknown origin gets no CORS headers but still varies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Values("Vary"), "Origin")
	})
}
