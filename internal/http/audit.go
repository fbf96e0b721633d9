package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/studyhub/internal/audit"
	"github.com/mrlokans/studyhub/internal/result"
)

type AuditReader interface {
	ListEvents(userID uint, eventType string, limit, offset int) result.Result[audit.EventPage]
}

type AuditController struct {
	trail AuditReader
}

func NewAuditController(trail AuditReader) *AuditController {
	return &AuditController{trail: trail}
}

// List handles GET /api/data/audit?type=&limit=&offset=
// Only the caller's own events are returned.
func (ac *AuditController) List(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset")
	if !ok {
		return
	}
	respond(c, ac.trail.ListEvents(GetUserID(c), c.Query("type"), limit, offset))
}

// queryInt parses an optional integer query parameter; absent means zero.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, name+" must be a number")
		return 0, false
	}
	return n, true
}
