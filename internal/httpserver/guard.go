package httpserver

import (
	"context"
	"net/http"
	"strings"

	authusecase "userhub/backend/internal/usecase/auth"
)

type ctxKeyIdentity struct{}

// guard is the request gate: it runs once per request, before any handler
// logic. Public endpoints pass through untouched. Everything else must carry
// a verifiable bearer token; the decoded identity is attached to the request
// context. The outcome is binary, and all rejection causes (missing header,
// malformed header, bad signature, expired token) collapse into the same
// 401 response.
func (s *Server) guard(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.routes.isPublic(r.Method, pattern) {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		identity, err := s.tokens.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyIdentity{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identityFromContext returns the authenticated identity attached by the
// guard, if any.
func identityFromContext(ctx context.Context) (authusecase.Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity{}).(authusecase.Identity)
	return identity, ok
}

// bearerToken extracts the token from an Authorization header. The header
// must be exactly the two-token form "Bearer <token>": case-sensitive scheme
// word, single space, non-empty token.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	if token == "" || strings.ContainsRune(token, ' ') {
		return "", false
	}
	return token, true
}
