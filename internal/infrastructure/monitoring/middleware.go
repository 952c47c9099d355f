package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware creates a Gin middleware for metrics collection
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		metrics.RecordHTTPRequest(method, path, status, duration)
	}
}

// FetchTimer measures one manifest fetch attempt
type FetchTimer struct {
	start   time.Time
	metrics *Metrics
}

// NewFetchTimer creates a timer for a manifest fetch
func NewFetchTimer(metrics *Metrics) *FetchTimer {
	return &FetchTimer{start: time.Now(), metrics: metrics}
}

// Stop stops the timer and records the fetch result. Safe on a nil
// timer so callers without metrics skip recording.
func (t *FetchTimer) Stop(result string) {
	if t == nil {
		return
	}
	t.metrics.RecordManifestFetch(result, time.Since(t.start))
}
