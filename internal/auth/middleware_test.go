package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/studyhub/internal/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newGuardedRouter(guard *TokenGuard, reached *bool) *gin.Engine {
	router := gin.New()
	mw := NewMiddleware(guard, logging.Discard())
	router.GET("/protected", mw.RequireToken(), func(c *gin.Context) {
		*reached = true
		c.JSON(http.StatusOK, gin.H{"userId": GetUserID(c)})
	})
	return router
}

func TestRequireToken_Valid(t *testing.T) {
	guard := NewTokenGuard([]byte("secret"), time.Hour)
	token, err := guard.Issue(5, "u@example.com")
	require.NoError(t, err)

	var reached bool
	router := newGuardedRouter(guard, &reached)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
	assert.JSONEq(t, `{"userId":5}`, w.Body.String())
}

func TestRequireToken_Rejects(t *testing.T) {
	guard := NewTokenGuard([]byte("secret"), time.Hour)

	for _, header := range []string{"", "Bearer nope", "Token abc"} {
		var reached bool
		router := newGuardedRouter(guard, &reached)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.False(t, reached, "handler must not run for %q", header)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, float64(401), body["statusCode"])
		assert.Equal(t, "Unauthorized", body["message"])
		assert.NotContains(t, body, "data")
	}
}

func TestGetUserID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uint(0), GetUserID(c))

	c.Set(ContextKeyUserID, "not-a-uint")
	assert.Equal(t, uint(0), GetUserID(c))
}
