package middleware

import (
	"strconv"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/platform/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latencies per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
