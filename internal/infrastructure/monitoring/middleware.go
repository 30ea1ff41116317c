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

		// Get request size
		reqSize := c.Request.ContentLength
		if reqSize < 0 {
			reqSize = 0
		}

		// Process request
		c.Next()

		// Get response data
		duration := time.Since(start)
		status := strconv.Itoa(c.Writer.Status())
		respSize := int64(c.Writer.Size())

		// Record metrics
		metrics.RecordHTTPRequest(method, path, status, duration, reqSize, respSize)
	}
}

// StageTimer measures one pipeline stage
type StageTimer struct {
	start   time.Time
	metrics *Metrics
	stage   string
}

// NewStageTimer starts timing a pipeline stage
func NewStageTimer(metrics *Metrics, stage string) *StageTimer {
	return &StageTimer{
		start:   time.Now(),
		metrics: metrics,
		stage:   stage,
	}
}

// Stop stops the timer and records the stage outcome
func (t *StageTimer) Stop(err error) {
	t.metrics.RecordStage(t.stage, time.Since(t.start), err)
}
