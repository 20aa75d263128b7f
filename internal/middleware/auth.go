package middleware

import (
	"crypto/subtle"
	"net/http"
)

// APIKeyHeader carries the shared secret on inbound requests.
const APIKeyHeader = "x-api-key"

// APIKey returns middleware enforcing the shared-secret header. An
// empty configured secret fails closed: every request is rejected
// rather than letting a misconfigured deployment run open. The
// expected value never appears in any response.
func APIKey(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(APIKeyHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error": "invalid API key"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
