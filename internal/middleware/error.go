package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/vendas-realtime/internal/domain/dto"
	"github.com/guttosm/vendas-realtime/internal/domain/errs"
	"github.com/guttosm/vendas-realtime/internal/logger"
)

// ErrorHandler renders the last error attached with c.Error as a JSON
// dto.ErrorResponse, choosing the status from the error type:
//
//	*errs.ValidationError       -> 400
//	*errs.AuthError             -> 401
//	*errs.UpstreamError         -> 502
//	*errs.CacheUnavailableError -> 500
//	anything else               -> 500
//
// Client errors carry the underlying detail in the "error" field. Server-side
// failures only log it, so driver and network text never reaches the caller.
// Nothing is written if the handler already produced a response.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	status, message := classify(err)

	rid, _ := c.Get(RequestIDKey)
	ev := logger.L().Warn()
	if status >= http.StatusInternalServerError {
		ev = logger.L().Error()
	}
	ev.Err(err).
		Str("request_id", toString(rid)).
		Int("status", status).
		Msg("request failed")

	detail := err
	if status >= http.StatusInternalServerError {
		detail = nil
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, detail))
}

func classify(err error) (int, string) {
	var (
		validation *errs.ValidationError
		auth       *errs.AuthError
		upstream   *errs.UpstreamError
		cacheErr   *errs.CacheUnavailableError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, "invalid date parameters"
	case errors.As(err, &auth):
		return http.StatusUnauthorized, "unauthorized"
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "failed to query sales"
	case errors.As(err, &cacheErr):
		return http.StatusInternalServerError, "cache unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// AbortWithError stops the chain and writes a dto.ErrorResponse with status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
