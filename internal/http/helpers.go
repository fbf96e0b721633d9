package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/studyhub/internal/auth"
	"github.com/mrlokans/studyhub/internal/result"
)

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// --- Envelope Helpers ---

// respond renders a service result as the response envelope.
func respond[T any](c *gin.Context, r result.Result[T]) {
	env := r.Envelope()
	c.JSON(env.StatusCode, env)
}

func respondFailure(c *gin.Context, status int, message string) {
	c.JSON(status, result.Envelope{StatusCode: status, Message: message, Error: true})
}

// respondBadRequest sends a 400 envelope.
func respondBadRequest(c *gin.Context, message string) {
	respondFailure(c, http.StatusBadRequest, message)
}

// respondAccepted sends a 202 envelope for enqueued work.
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, result.Envelope{StatusCode: http.StatusAccepted, Message: message, Data: data})
}

// --- Parameter Parsing ---

// queryID parses a numeric query parameter. Missing, non-numeric and zero
// values are all reported as absent.
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// requireQueryID is queryID that answers 400 when the parameter is absent.
func requireQueryID(c *gin.Context, name string) (uint, bool) {
	id, ok := queryID(c, name)
	if !ok {
		respondBadRequest(c, name+" is required")
	}
	return id, ok
}

// bindJSON decodes the request body, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondBadRequest(c, "Invalid request body")
		return false
	}
	return true
}
