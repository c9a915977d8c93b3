package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nurpe/ecoreports/internal/model"
)

type stubParser struct {
	principal model.Principal
	err       error
	got       string
}

func (s *stubParser) Parse(token string) (model.Principal, error) {
	s.got = token
	return s.principal, s.err
}

func newAuthRouter(parser TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(parser))
	router.GET("/me", func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, principal.UserID.String())
	})
	return router
}

func TestAuth(t *testing.T) {
	userID := uuid.New()

	t.Run("valid bearer token", func(t *testing.T) {
		parser := &stubParser{principal: model.Principal{UserID: userID}}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer abc.def")

		newAuthRouter(parser).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), rec.Body.String())
		assert.Equal(t, "abc.def", parser.got)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newAuthRouter(&stubParser{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		newAuthRouter(&stubParser{}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("parser rejects token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		newAuthRouter(&stubParser{err: errors.New("bad")}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
