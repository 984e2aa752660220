// Package respond writes JSON error bodies for the API handlers and maps
// domain error kinds onto HTTP status codes.
package respond

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fmi-projects/project-management-api/internal/api/http/middleware"
	"github.com/fmi-projects/project-management-api/internal/apperr"
	"github.com/fmi-projects/project-management-api/internal/paging"
	"github.com/fmi-projects/project-management-api/internal/validation"
)

// Status returns the HTTP status for err.
func Status(err error) int {
	if _, ok := validation.As(err); ok {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, paging.ErrUnknownSortField):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error aborts the request with the JSON body matching err. Unmapped
// errors are logged and reported with a generic message carrying the
// request id, when there is one.
func Error(c *gin.Context, err error) {
	if verrs, ok := validation.As(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":   "validation failed",
			"details": verrs,
		})
		return
	}

	status := Status(err)
	if status == http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("request failed")
		body := gin.H{"error": "internal server error"}
		if rid := middleware.GetRequestID(c.Request.Context()); rid != "" {
			body["requestId"] = rid
		}
		c.AbortWithStatusJSON(status, body)
		return
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// BindJSON decodes the request body into dst, writing a 400 on failure.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// ID parses a positive integer path parameter, writing a 400 on failure.
func ID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
