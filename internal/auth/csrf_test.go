package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupCSRFRouter(mutations *int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CSRFMiddleware([]byte("0123456789abcdef0123456789abcdef"), false))
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.POST("/mutate", func(c *gin.Context) {
		*mutations++
		c.JSON(http.StatusOK, gin.H{"message": "mutated"})
	})
	return router
}

func TestCSRFMiddleware_SafeMethodsPass(t *testing.T) {
	var mutations int
	router := setupCSRFRouter(&mutations)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// The token is exposed for the frontend to echo back
	assert.NotEmpty(t, w.Header().Get(CSRFTokenHeader))
}

func TestCSRFMiddleware_RejectsMutationWithoutToken(t *testing.T) {
	var mutations int
	router := setupCSRFRouter(&mutations)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mutate", strings.NewReader("{}"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "CSRF")
	// The rejection must stop the chain: the protected handler never runs
	assert.Zero(t, mutations)
}
