package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGatedRouter(tokens *TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequireAuth(tokens, zap.NewNop()))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/thing", ok)
	router.PUT("/thing", ok)
	return router
}

func TestRequireAuthPassesReadVerbs(t *testing.T) {
	router := newGatedRouter(NewTokenService("s", time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/thing", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthChallengesMissingToken(t *testing.T) {
	router := newGatedRouter(NewTokenService("s", time.Hour))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/thing", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}

func TestRequireAuthRejectsWrongScheme(t *testing.T) {
	router := newGatedRouter(NewTokenService("s", time.Hour))

	req := httptest.NewRequest(http.MethodPut, "/thing", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthAcceptsValidBearer(t *testing.T) {
	tokens := NewTokenService("s", time.Hour)
	router := newGatedRouter(tokens)

	token, err := tokens.Mint("admin", "A", "B", "a@b")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/thing", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
