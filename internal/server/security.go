package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the hardening applied to every HTTP endpoint.
type SecurityConfig struct {
	// EnableCORS enables cross-origin resource sharing headers.
	EnableCORS bool
	// AllowedOrigins lists origins allowed by CORS; "*" allows any.
	AllowedOrigins []string
	// AllowedMethods lists HTTP methods advertised to CORS clients.
	AllowedMethods []string
}

// DefaultSecurityConfig returns the hardening defaults: permissive CORS
// restricted to read methods. The server only exposes read-only
// endpoints, so nothing beyond GET and OPTIONS is ever advertised.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
	}
}

// SecurityMiddleware sets standard security headers and handles CORS,
// including OPTIONS preflight requests, before calling next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// allowedOrigin resolves the Access-Control-Allow-Origin value for a
// request origin, or "" when the origin is not allowed.
func allowedOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if a == origin && origin != "" {
			return origin
		}
	}
	return ""
}
