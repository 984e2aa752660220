package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmi-projects/project-management-api/internal/api/http/middleware"
	"github.com/fmi-projects/project-management-api/internal/apperr"
	"github.com/fmi-projects/project-management-api/internal/paging"
	"github.com/fmi-projects/project-management-api/internal/validation"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{validation.Errors{{Field: "title", Message: "required"}}, http.StatusBadRequest},
		{fmt.Errorf("%w \"nope\"", paging.ErrUnknownSortField), http.StatusBadRequest},
		{fmt.Errorf("project %w", apperr.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("wrap: %w", apperr.ErrForbidden), http.StatusForbidden},
		{apperr.ErrUnauthorized, http.StatusUnauthorized},
		{apperr.ErrConflict, http.StatusConflict},
		{apperr.ErrTooManyAttempts, http.StatusTooManyRequests},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func serve(t *testing.T, h gin.HandlerFunc, path, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET(path, h)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestError_Bodies(t *testing.T) {
	t.Run("validation lists fields", func(t *testing.T) {
		rr := serve(t, func(c *gin.Context) {
			Error(c, validation.Errors{{Field: "title", Message: "too short"}})
		}, "/x", "/x")

		require.Equal(t, http.StatusBadRequest, rr.Code)
		var body struct {
			Error   string                 `json:"error"`
			Details []validation.FieldError `json:"details"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "validation failed", body.Error)
		assert.Equal(t, "title", body.Details[0].Field)
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		rr := serve(t, func(c *gin.Context) {
			Error(c, errors.New("pq: connection refused"))
		}, "/x", "/x")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "connection refused")
	})

	t.Run("internal errors carry the request id", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(middleware.RequestIDMiddleware(zerolog.Nop()))
		r.GET("/x", func(c *gin.Context) { Error(c, errors.New("boom")) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-123")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"error":"internal server error","requestId":"req-123"}`, rr.Body.String())
	})

	t.Run("not found keeps message", func(t *testing.T) {
		rr := serve(t, func(c *gin.Context) {
			Error(c, fmt.Errorf("comment %w", apperr.ErrNotFound))
		}, "/x", "/x")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"comment not found"}`, rr.Body.String())
	})
}

func TestID(t *testing.T) {
	h := func(c *gin.Context) {
		id, ok := ID(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}

	assert.JSONEq(t, `{"id":42}`, serve(t, h, "/items/:id", "/items/42").Body.String())
	assert.Equal(t, http.StatusBadRequest, serve(t, h, "/items/:id", "/items/abc").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, h, "/items/:id", "/items/0").Code)
}
