package middleware

import (
	"strconv"
	"time"

	"guest-checkin/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency keyed by the route template,
// so /api/guests/:token is one series no matter the token.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
