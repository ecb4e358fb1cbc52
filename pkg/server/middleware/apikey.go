package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/cp-tools/casino-atlas/pkg/models/api"
)

const apiKeyHeader = "X-Api-Key"

// APIKey enforces the static shared secret. An empty configured key
// disables the check; there is no user model behind it.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			provided := req.Header.Get(apiKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "invalid api key"})
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
