package auth

import (
	"log/slog"
	"net/http"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/debug"
)

// DefaultBypassPaths skip authentication.
var DefaultBypassPaths = []string{"/healthz", "/metrics"}

const unauthorizedBody = `{"error":"unauthorized","message":"authentication required"}`

// Middleware authenticates every request outside bypass with a.
func Middleware(a Authenticator, bypass []string) func(http.Handler) http.Handler {
	skip := make(map[string]bool, len(bypass))
	for _, p := range bypass {
		skip[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			res := a.Authenticate(r.Context(), r)
			if res.Decision != Accept || res.Identity == nil || res.Identity.Subject == "" {
				slog.Warn("authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", res.Err,
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("WWW-Authenticate", `Bearer realm="portainer-mcp"`)
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(unauthorizedBody))
				return
			}

			debug.Log("auth", "authenticated", "subject", res.Identity.Subject, "method", res.Identity.Method)
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), res.Identity)))
		})
	}
}
