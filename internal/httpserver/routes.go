package httpserver

import (
	"net/http"
	"strings"
)

// routeRegistry records, at registration time, which endpoints are exempt
// from authentication. Flags exist at two scopes: a specific endpoint
// (optionally method-qualified, e.g. "POST /users") and a group of endpoints
// sharing a path prefix. A specific flag overrides a group flag; when
// neither is present the endpoint requires authentication.
type routeRegistry struct {
	routes map[string]bool
	groups map[string]bool
}

func newRouteRegistry() *routeRegistry {
	return &routeRegistry{
		routes: make(map[string]bool),
		groups: make(map[string]bool),
	}
}

// markRoute records a flag for a single endpoint. The key is either a bare
// mux pattern or "METHOD pattern"; the method-qualified form wins.
func (rr *routeRegistry) markRoute(key string, public bool) {
	rr.routes[key] = public
}

// markGroup records a flag for every endpoint whose pattern starts with the
// given prefix.
func (rr *routeRegistry) markGroup(prefix string, public bool) {
	rr.groups[prefix] = public
}

// isPublic resolves the effective flag for a request dispatched to the given
// pattern. Fail-closed: no flag means not public.
func (rr *routeRegistry) isPublic(method, pattern string) bool {
	if v, ok := rr.routes[method+" "+pattern]; ok {
		return v
	}
	if v, ok := rr.routes[pattern]; ok {
		return v
	}

	var (
		bestLen = -1
		bestVal bool
	)
	for prefix, v := range rr.groups {
		if strings.HasPrefix(pattern, prefix) && len(prefix) > bestLen {
			bestLen = len(prefix)
			bestVal = v
		}
	}
	if bestLen >= 0 {
		return bestVal
	}
	return false
}

func (s *Server) registerRoutes() {
	s.routes.markGroup("/auth/", true)
	s.routes.markRoute("/health", true)
	// Registration is open; everything else under /users requires a token.
	s.routes.markRoute(http.MethodPost+" /users", true)

	s.handle("/health", http.HandlerFunc(s.handleHealth))
	s.handle("/auth/login", http.HandlerFunc(s.handleLogin))
	s.handle("/users", http.HandlerFunc(s.handleUsers))
	s.handle("/users/", http.HandlerFunc(s.handleUserByID))
}

// handle registers the handler on the mux behind the request gate for its
// pattern.
func (s *Server) handle(pattern string, h http.Handler) {
	s.router.Handle(pattern, s.guard(pattern, h))
}
