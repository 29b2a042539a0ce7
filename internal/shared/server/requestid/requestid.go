// Package requestid holds the request ID key shared by middleware and
// response writers.
package requestid

import "github.com/gin-gonic/gin"

const (
	// Key is the gin context key the request ID is stored under.
	Key = "requestId"
	// Header carries the request ID in and out.
	Header = "X-Request-Id"
)

// FromContext returns the request ID stored on c, or "".
func FromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(Key)
}
