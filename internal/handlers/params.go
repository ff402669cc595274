package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD (midnight UTC) or RFC 3339.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", raw)
	}
	return t.UTC(), nil
}

// parseDateRange parses both ends of a query range, writing a 400 on failure.
func parseDateRange(c *gin.Context, rawStart, rawEnd string) (time.Time, time.Time, bool) {
	start, err := parseDate(rawStart)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start-date: " + err.Error()})
		return time.Time{}, time.Time{}, false
	}
	end, err := parseDate(rawEnd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end-date: " + err.Error()})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// idParam parses a positive numeric path parameter, writing a 400 on failure.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s: must be a positive integer", name)})
		return 0, false
	}
	return id, true
}

// actingUser reads the authenticated user ID, writing a 401 when it is missing.
func actingUser(c *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}
