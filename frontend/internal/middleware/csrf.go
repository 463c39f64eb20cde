package middleware

import (
	"context"
	"net/http"

	"github.com/itchan-dev/postadmin/shared/csrf"
	"github.com/itchan-dev/postadmin/shared/logger"
)

const csrfCookieTTL = 86400 // seconds

type contextKey string

const csrfTokenContextKey contextKey = "csrf_token"

// CookieConfig holds settings shared by the cookies this package issues.
type CookieConfig struct {
	SecureCookies bool // requires HTTPS
}

// GenerateCSRFToken sets the CSRF cookie if absent and stores the token in the
// request context for forms.
func GenerateCSRFToken(config CookieConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if cookie, err := r.Cookie(csrf.FieldName); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				token, err = csrf.NewToken()
				if err != nil {
					logger.Log.Error("failed to generate CSRF token", "component", "csrf", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     csrf.FieldName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   config.SecureCookies,
					SameSite: http.SameSiteStrictMode,
					MaxAge:   csrfCookieTTL,
				})
			}

			ctx := context.WithValue(r.Context(), csrfTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidateCSRFToken rejects state-changing requests whose form token does not
// match the CSRF cookie.
func ValidateCSRFToken() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isSafeMethod(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrf.FieldName)
			if err != nil {
				logger.Log.Warn("CSRF token cookie missing", "component", "csrf", "path", r.URL.Path)
				http.Error(w, "CSRF token missing", http.StatusForbidden)
				return
			}

			if err := r.ParseForm(); err != nil {
				logger.Log.Warn("failed to parse form", "component", "csrf", "error", err)
				http.Error(w, "Invalid form data", http.StatusBadRequest)
				return
			}

			if !csrf.Match(cookie.Value, r.PostFormValue(csrf.FieldName)) {
				logger.Log.Warn("CSRF token validation failed", "component", "csrf", "path", r.URL.Path)
				http.Error(w, "CSRF token invalid", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetCSRFTokenFromContext retrieves the CSRF token from the request context.
func GetCSRFTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(csrfTokenContextKey).(string)
	return token
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
