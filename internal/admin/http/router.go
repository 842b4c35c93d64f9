package http

import (
	"log/slog"
	"net/http"

	"github.com/infiniteherbs/adminapi/internal/admin/service"
	"github.com/infiniteherbs/adminapi/internal/admin/store"
	"github.com/infiniteherbs/adminapi/pkg/httpx"
	"github.com/infiniteherbs/adminapi/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers and owns the global
// middleware chain (request logging, CORS).
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	appName      string
	buildVersion string
	logger       *slog.Logger
	store        store.Store

	UserService  *service.UserService
	TokenService *service.TokenService
}

func NewRouter(
	appName, buildVersion string,
	allowedOrigins []string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		appName:      appName,
		buildVersion: buildVersion,
		logger:       logger,
		store:        st,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORSMiddleware(allowedOrigins),
	}

	return r
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}

	r.Mux.Handle("POST /api/auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /api/auth/refresh", http.HandlerFunc(h.HandleRefresh))
	r.Mux.Handle("POST /api/auth/register", http.HandlerFunc(h.HandleRegister))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/users", http.HandlerFunc(h.HandleList))
	r.Mux.Handle("POST /api/users", http.HandlerFunc(h.HandleCreate))
	r.Mux.Handle("GET /api/users/{id}", http.HandlerFunc(h.HandleGet))
	r.Mux.Handle("PUT /api/users/{id}", http.HandlerFunc(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/users/{id}", http.HandlerFunc(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /{$}", RootHandler(r.appName, r.buildVersion))
	r.Mux.Handle("GET /healthz", HealthzHandler(r.store))
}
