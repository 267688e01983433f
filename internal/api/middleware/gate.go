package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Banking-Admin-Backend/internal/api/response"
	"github.com/ndewijer/Banking-Admin-Backend/internal/session"
)

// Redirect targets used by the gate.
const (
	LoginPath         = "/login"
	UnauthorizedLogin = "/login?error=unauthorized"
)

// publicPaths are reachable without a session, as are their sub-paths.
var publicPaths = []string{"/login", "/api/auth/login", "/forgot-password"}

// probePrefix covers health and version checks used by orchestrators.
const probePrefix = "/api/system/"

// adminPrefixes require the admin role flag on top of a valid session.
var adminPrefixes = []string{"/users/add", "/users/manage", "/transactions/add"}

// IsPublicPath reports whether path may be served without a session. A public path matches
// exactly or when followed by "/" or "?".
func IsPublicPath(path string) bool {
	if strings.HasPrefix(path, probePrefix) {
		return true
	}
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") || strings.HasPrefix(path, p+"?") {
			return true
		}
	}
	return false
}

// IsAdminPath reports whether path is an admin-only page.
func IsAdminPath(path string) bool {
	for _, p := range adminPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Gate returns the route gate. Public paths pass through untouched. Every other request needs
// a session that m can load; it is injected into the request context for the handlers.
//
//   - no session, or one that fails to load: 302 /login
//   - admin path and the session user lacks the role flag: 302 /login?error=unauthorized
func Gate(m *session.Manager, log zerolog.Logger) func(http.Handler) http.Handler {
	log = log.With().Str("component", "gate").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if IsPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			sc, err := m.Load(r)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					log.Debug().Err(err).Str("path", path).Msg("rejecting invalid session")
					m.Clear(w)
				}
				response.Redirect(w, r, LoginPath)
				return
			}

			if IsAdminPath(path) && !sc.IsAdmin() {
				log.Warn().Str("user_id", sc.User.ID.String()).Str("path", path).Msg("admin route denied")
				response.Redirect(w, r, UnauthorizedLogin)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sc)))
		})
	}
}
