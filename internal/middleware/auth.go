package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/vendas-realtime/internal/domain/errs"
)

// SecretKeyHeader carries the shared secret on protected endpoints.
const SecretKeyHeader = "X-Secret-Key"

// SecretKey guards a route group with the shared secret.
//
// Behavior:
//   - Server secret not configured: 500, nothing is served.
//   - Header missing or different from the secret: 401.
//   - Otherwise the request continues.
//
// It runs before the handler, so a bad secret wins over bad query params.
func SecretKey(secret string) gin.HandlerFunc {
	want := sha256.Sum256([]byte(secret))

	return func(c *gin.Context) {
		if secret == "" {
			AbortWithError(c, http.StatusInternalServerError, "SECRET_KEY not configured on the server", nil)
			return
		}

		got := c.GetHeader(SecretKeyHeader)
		if got == "" {
			AbortWithError(c, http.StatusUnauthorized, "unauthorized", &errs.AuthError{Reason: "missing " + SecretKeyHeader})
			return
		}

		// Hashing first keeps the comparison constant-time regardless of length.
		gotSum := sha256.Sum256([]byte(got))
		if subtle.ConstantTimeCompare(gotSum[:], want[:]) != 1 {
			AbortWithError(c, http.StatusUnauthorized, "unauthorized", &errs.AuthError{Reason: "invalid " + SecretKeyHeader})
			return
		}

		c.Next()
	}
}
