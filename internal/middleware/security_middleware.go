package middleware

import (
	"net/http"
	"strings"
)

// contentSecurityPolicy keeps scripts on our own origin. The map view pulls
// tiles and icons from third-party HTTPS hosts, so images and XHR may leave
// the origin.
const contentSecurityPolicy = "default-src 'self'; " +
	"img-src 'self' data: https:; " +
	"connect-src 'self' https:; " +
	"style-src 'self' 'unsafe-inline'"

// SecurityHeaders adds a standard set of security headers to every response.
//
// API responses and pages are never cached. Files under assetsPrefix are
// content-hashed by the frontend build and may be cached for a year.
func SecurityHeaders(assetsPrefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Cross-Origin-Opener-Policy", "same-origin")
			h.Set("Cross-Origin-Resource-Policy", "same-origin")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", contentSecurityPolicy)

			if assetsPrefix != "" && strings.HasPrefix(r.URL.Path, assetsPrefix) {
				h.Set("Cache-Control", "public, max-age=31536000, immutable")
			} else {
				h.Set("Cache-Control", "no-store, no-cache, must-revalidate")
				h.Set("Pragma", "no-cache")
			}
			next.ServeHTTP(w, r)
		})
	}
}
