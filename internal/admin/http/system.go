package http

import (
	"net/http"

	"github.com/infiniteherbs/adminapi/internal/admin/store"
	"github.com/infiniteherbs/adminapi/pkg/httpx"
)

// RootHandler serves GET / with basic service identification.
func RootHandler(appName, version string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"app":     appName,
			"version": version,
			"status":  "running",
		})
	})
}

// HealthzHandler serves GET /healthz; unhealthy when the store does not
// answer a ping.
func HealthzHandler(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
			})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})
}
