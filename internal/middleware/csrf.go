package middleware

import (
	"net/http"

	"github.com/gorilla/csrf"
)

// CSRF wraps the whole engine; every POST must carry the form token.
func CSRF(key []byte, secure bool, trustedOrigins []string) func(http.Handler) http.Handler {
	return csrf.Protect(
		key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.FieldName("csrf_token"),
		csrf.TrustedOrigins(trustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Forbidden: the form expired, reload the page and try again.", http.StatusForbidden)
		})),
	)
}
