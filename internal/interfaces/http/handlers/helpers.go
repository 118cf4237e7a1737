package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/shared/authorization"
)

// currentUser extracts the authenticated user's ID from the request
// context.
func currentUser(c *gin.Context) (uint, bool) {
	return middleware.CurrentUserID(c)
}

// currentRole extracts the authenticated user's role from the request
// context.
func currentRole(c *gin.Context) authorization.UserRole {
	return middleware.CurrentUserRole(c)
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// parseUintQuery parses an optional positive integer query parameter.
// A missing parameter yields nil; a malformed one reports failure.
func parseUintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return nil, false
	}
	id := uint(value)
	return &id, true
}

// parseTimeQuery parses an optional RFC 3339 or date-only query
// parameter.
func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	return nil, false
}
