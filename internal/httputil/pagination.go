package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Sortable columns for note listings. Anything else is rejected to keep the
// ORDER BY clause out of user control.
var allowedSortFields = map[string]bool{
	"updated_at": true,
	"created_at": true,
	"title":      true,
}

// ParsePagination safely parses and validates page, size and sort_by query parameters.
// Pages are zero-indexed with a default size of 10; size cannot exceed 100.
func ParsePagination(c *gin.Context) (page, size int, sortBy string, err error) {
	// Parse page query parameter (default: 0)
	pageStr := c.DefaultQuery("page", "0")
	page, err = strconv.Atoi(pageStr)
	if err != nil || page < 0 {
		return 0, 0, "", fmt.Errorf("invalid page parameter: must be a non-negative integer")
	}

	// Parse size query parameter (default: 10, max: 100)
	sizeStr := c.DefaultQuery("size", "10")
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size < 1 || size > 100 {
		return 0, 0, "", fmt.Errorf("invalid size parameter: must be between 1 and 100")
	}

	sortBy = c.DefaultQuery("sort_by", "updated_at")
	if !allowedSortFields[sortBy] {
		return 0, 0, "", fmt.Errorf("invalid sort_by parameter: must be one of updated_at, created_at, title")
	}

	return page, size, sortBy, nil
}
