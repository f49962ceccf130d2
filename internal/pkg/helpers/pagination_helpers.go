package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // pages are 1-based
)

// CalculateOffsetLimit calculates the offset and limit for SQL queries based
// on a 1-based page index. Invalid values fall back to the defaults.
func CalculateOffsetLimit(page, limit int) (offset uint64, normalized int) {
	if limit <= 0 || limit > MaxPageSize {
		normalized = DefaultPageSize
	} else {
		normalized = limit
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * normalized)
	return offset, normalized
}

// TotalPages computes the page count for a total row count and page size.
func TotalPages(totalItems int64, limit int) int {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if totalItems <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalItems) / float64(limit)))
}

// ParsePaginationParams extracts page and limit query parameters, falling back
// to 1/10 when absent or invalid.
func ParsePaginationParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	return page, limit
}
