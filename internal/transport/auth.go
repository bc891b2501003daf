package transport

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// BasicAuth enforces the shared dashboard password. Any username is accepted;
// only the password is checked, in constant time. The WWW-Authenticate header
// is deliberately omitted so browsers don't pop a credentials dialog.
func BasicAuth(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if password == "" {
				writeError(w, http.StatusInternalServerError, "Server configuration error")
				return
			}

			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Basic ") {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			_, supplied, ok := r.BasicAuth()
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			if subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
				writeError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
