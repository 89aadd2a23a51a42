package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	metrics "github.com/turtacn/chemsolver/internal/infrastructure/monitoring/prometheus"
)

// Metrics records request counts, latencies and in-flight requests. Paths are
// labelled by route template so that /elements/:symbol is one series.
func Metrics(m *metrics.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.HTTPRequestStarted()
		defer m.HTTPRequestDone()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}

//Personal.AI order the ending
