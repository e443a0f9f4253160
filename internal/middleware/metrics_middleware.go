package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/estatecore/backend/internal/metrics"
)

// Metrics records request counts and latencies per route template
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
