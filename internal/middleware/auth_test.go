package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSecretKey(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{name: "valid", secret: "s3cret", header: "s3cret", want: http.StatusOK},
		{name: "missing header", secret: "s3cret", header: "", want: http.StatusUnauthorized},
		{name: "wrong header", secret: "s3cret", header: "guess", want: http.StatusUnauthorized},
		{name: "prefix of secret", secret: "s3cret", header: "s3cre", want: http.StatusUnauthorized},
		{name: "server secret not configured", secret: "", header: "anything", want: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(SecretKey(tc.secret))
			reached := false
			r.GET("/", func(c *gin.Context) {
				reached = true
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(SecretKeyHeader, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("code=%d want %d", w.Code, tc.want)
			}
			if reached != (tc.want == http.StatusOK) {
				t.Fatalf("handler reached=%v for status %d", reached, w.Code)
			}
		})
	}
}
