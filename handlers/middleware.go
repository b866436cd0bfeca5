package handlers

import (
	"net/http"

	"snippetapp/auth"
)

// RequireAuth guards routes that need an authenticated session. Anonymous
// requests get a hard 403, never a redirect.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUserID(r) == 0 {
			renderError(w, r, http.StatusForbidden, "MustBeLoggedIn")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RedirectIfAuthenticated keeps logged-in users away from the login and
// registration pages.
func RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUserID(r) != 0 {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self'")
		next.ServeHTTP(w, r)
	})
}
