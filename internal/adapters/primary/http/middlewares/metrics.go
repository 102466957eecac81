package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/admin/astro/kundali-engine/internal/ports/metrics"
)

// Metrics считает запросы и длительность по шаблону маршрута
func Metrics(recorder metrics.IRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.RecordHTTP(route, strconv.Itoa(c.Writer.Status()))
		recorder.RecordLatency("http "+route, time.Since(start))
	}
}
