package middleware

import (
	"net/http"
	"strings"

	"github.com/company-directory-api/internal/auth"
)

// TokenValidator проверяет токен и возвращает его владельца или nil
type TokenValidator interface {
	ValidateToken(token string, params auth.ValidationParams) *auth.Principal
}

// Authenticate пропускает только запросы с действительным bearer-токеном
func Authenticate(v TokenValidator, params auth.ValidationParams) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				unauthorized(w)
				return
			}

			principal := v.ValidateToken(strings.TrimSpace(token), params)
			if principal == nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), principal)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}
