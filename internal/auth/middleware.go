package auth

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Middleware rejects requests without a valid bearer token and puts the
// token subject into the request context. A missing token is a 401; a
// token that fails verification (bad signature, expired) is a 400.
func Middleware(s *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				writeMessage(w, http.StatusUnauthorized, "Access Denied. No token provided.")
				return
			}
			claims, err := s.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				writeMessage(w, http.StatusBadRequest, "Invalid or expired token.")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), claims.Subject)))
		})
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
