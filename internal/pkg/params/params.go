// Package params parses the path and query values shared by list and detail handlers.
package params

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ID parses a positive integer path parameter.
func ID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// OptionalID parses a positive integer query parameter; absent or invalid yields nil.
func OptionalID(c *gin.Context, name string) *int64 {
	s := c.Query(name)
	if s == "" {
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// Page reads page (1-based) and limit query values.
func Page(c *gin.Context) (page, limit int) {
	page = 1
	limit = defaultLimit
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
		if limit > maxLimit {
			limit = maxLimit
		}
	}
	return page, limit
}

// Offset converts a page and limit into a row offset.
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
