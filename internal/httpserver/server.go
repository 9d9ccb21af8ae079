package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"userhub/backend/internal/config"
	authusecase "userhub/backend/internal/usecase/auth"
	userusecase "userhub/backend/internal/usecase/user"
)

// Pinger reports datastore reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wraps the HTTP server lifecycle.
type Server struct {
	httpServer  *http.Server
	router      *http.ServeMux
	routes      *routeRegistry
	authService *authusecase.Service
	userService *userusecase.Service
	tokens      authusecase.TokenManager
	db          Pinger
	addr        string
}

// NewServer constructs a new Server with configured dependencies.
func NewServer(cfg config.Config, authService *authusecase.Service, userService *userusecase.Service, tokens authusecase.TokenManager, db Pinger) *Server {
	mux := http.NewServeMux()
	addr := cfg.HTTPPort
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	handler := withLogging(withCORS(mux, cfg.AllowedOrigins))

	srv := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      handler,
			ReadTimeout:  time.Duration(cfg.ReadTimeoutSec) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeoutSec) * time.Second,
			IdleTimeout:  time.Duration(cfg.IdleTimeoutSec) * time.Second,
		},
		router:      mux,
		routes:      newRouteRegistry(),
		authService: authService,
		userService: userService,
		tokens:      tokens,
		db:          db,
		addr:        addr,
	}
	srv.registerRoutes()
	return srv
}

// Start bootstraps the HTTP server on the configured address.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the underlying ServeMux, mainly for tests.
func (s *Server) Router() *http.ServeMux {
	return s.router
}

// Addr returns the configured network address for the HTTP server.
func (s *Server) Addr() string {
	return s.addr
}
