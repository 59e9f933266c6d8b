package httputil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// SetVersionETag writes the resource version as an ETag response header. Clients
// round-trip the value unmodified in If-Match to express which version their
// edit is based on.
func SetVersionETag(c *gin.Context, version int64) {
	c.Header("ETag", fmt.Sprintf("%q", strconv.FormatInt(version, 10)))
}

// ParseIfMatchVersion extracts the expected resource version from the If-Match
// request header. Returns (nil, nil) when the header is absent, which means the
// caller requested no concurrency check (last-write-wins).
func ParseIfMatchVersion(c *gin.Context) (*int64, error) {
	raw := c.GetHeader("If-Match")
	if raw == "" {
		return nil, nil
	}

	// Accept both quoted and bare forms; weak validators are not used here.
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "W/")
	raw = strings.Trim(raw, `"`)

	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || version < 0 {
		return nil, fmt.Errorf("invalid If-Match header: expected a resource version")
	}

	return &version, nil
}
