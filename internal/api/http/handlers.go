// Package http exposes the analysis pipeline over a JSON HTTP API.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sitelens/sitelens/internal/ai"
	"github.com/sitelens/sitelens/internal/infrastructure/monitoring"
	"github.com/sitelens/sitelens/internal/logging"
	"github.com/sitelens/sitelens/internal/pipeline"
	"github.com/sitelens/sitelens/internal/render"
	"github.com/sitelens/sitelens/internal/shared/validate"
)

// Handlers carries the dependencies of every HTTP handler.
type Handlers struct {
	orchestrator *pipeline.Orchestrator
	logger       *logging.Logger
	metrics      *monitoring.Metrics
	startTime    time.Time
}

// NewHandlers creates the handler set.
func NewHandlers(orchestrator *pipeline.Orchestrator, logger *logging.Logger, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		orchestrator: orchestrator,
		logger:       logger,
		metrics:      metrics,
		startTime:    time.Now(),
	}
}

// AnalyzeRequest is the JSON body of POST /analyze. Every field is a
// string; the pipeline parses them leniently.
type AnalyzeRequest struct {
	Target            string `json:"target"`
	Width             string `json:"width"`
	Height            string `json:"height"`
	FullPage          string `json:"fullPage"`
	Type              string `json:"type"`
	Quality           string `json:"quality"`
	Wait              string `json:"wait"`
	Selector          string `json:"selector"`
	Model             string `json:"model"`
	Format            string `json:"format"`
	Prompt            string `json:"prompt"`
	IncludeScreenshot string `json:"includeScreenshot"`
}

func (r AnalyzeRequest) pipelineRequest() pipeline.Request {
	return pipeline.Request{
		Target:            r.Target,
		Width:             r.Width,
		Height:            r.Height,
		FullPage:          r.FullPage,
		ImageType:         r.Type,
		Quality:           r.Quality,
		Wait:              r.Wait,
		Selector:          r.Selector,
		Model:             r.Model,
		Format:            r.Format,
		Prompt:            r.Prompt,
		IncludeScreenshot: r.IncludeScreenshot,
	}
}

// Root handles GET /
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "sitelens",
		"status":  "running",
		"endpoints": []string{
			"/analyze", "/page/html", "/page/structure", "/page/screenshot",
			"/cache/:operation", "/health", "/metrics",
		},
	})
}

// Health handles GET /health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"uptime":  time.Since(h.startTime).String(),
		"metrics": h.metrics.GetSnapshot(),
	})
}

// Analyze handles POST /analyze
func (h *Handlers) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := validate.Target(req.Target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Prompt(req.Prompt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.orchestrator.Analyze(c.Request.Context(), req.pipelineRequest())
	if err != nil {
		h.fail(c, "analyze", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// PageHTML handles GET /page/html
func (h *Handlers) PageHTML(c *gin.Context) {
	req, ok := h.queryRequest(c)
	if !ok {
		return
	}

	html, cached, err := h.orchestrator.HTML(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "html", err)
		return
	}

	c.Header("X-Cache", cacheHeader(cached))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// PageStructure handles GET /page/structure
func (h *Handlers) PageStructure(c *gin.Context) {
	req, ok := h.queryRequest(c)
	if !ok {
		return
	}

	dom, cached, err := h.orchestrator.Structure(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "structure", err)
		return
	}

	c.Header("X-Cache", cacheHeader(cached))
	c.JSON(http.StatusOK, dom)
}

// PageScreenshot handles GET /page/screenshot
func (h *Handlers) PageScreenshot(c *gin.Context) {
	req, ok := h.queryRequest(c)
	if !ok {
		return
	}

	data, mime, cached, err := h.orchestrator.Screenshot(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "screenshot", err)
		return
	}

	c.Header("X-Cache", cacheHeader(cached))
	c.Data(http.StatusOK, mime, data)
}

// PurgeCache handles DELETE /cache/:operation
func (h *Handlers) PurgeCache(c *gin.Context) {
	operation := c.Param("operation")
	switch operation {
	case pipeline.OpAnalyze, pipeline.OpHTML, pipeline.OpStructure, pipeline.OpScreenshot:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown operation: " + operation})
		return
	}

	deleted := h.orchestrator.Purge(c.Request.Context(), operation)
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// queryRequest builds a pipeline request from query parameters,
// answering 400 itself when the target is missing.
func (h *Handlers) queryRequest(c *gin.Context) (pipeline.Request, bool) {
	req := pipeline.Request{
		Target:            c.Query("target"),
		Width:             c.Query("width"),
		Height:            c.Query("height"),
		FullPage:          c.Query("fullPage"),
		ImageType:         c.Query("type"),
		Quality:           c.Query("quality"),
		Wait:              c.Query("wait"),
		Selector:          c.Query("selector"),
		Model:             c.Query("model"),
		Format:            c.Query("format"),
		Prompt:            c.Query("prompt"),
		IncludeScreenshot: c.Query("includeScreenshot"),
	}
	if err := validate.Target(req.Target); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return pipeline.Request{}, false
	}
	return req, true
}

// fail maps pipeline errors onto transport status codes.
func (h *Handlers) fail(c *gin.Context, operation string, err error) {
	h.logger.Error("operation failed",
		zap.String("operation", operation),
		zap.Error(err))

	var upstream *ai.UpstreamError
	switch {
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":    "model endpoint rejected the request",
			"status":   upstream.Status,
			"upstream": upstream.Payload,
		})
	case errors.Is(err, ai.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	case errors.Is(err, ai.ErrUnavailable), errors.Is(err, render.ErrScreenshotUnsupported):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

func cacheHeader(cached bool) string {
	if cached {
		return "HIT"
	}
	return "MISS"
}
