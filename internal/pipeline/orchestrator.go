package pipeline

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sitelens/sitelens/internal/ai"
	"github.com/sitelens/sitelens/internal/cache"
	"github.com/sitelens/sitelens/internal/extract"
	"github.com/sitelens/sitelens/internal/fingerprint"
	"github.com/sitelens/sitelens/internal/infrastructure/monitoring"
	"github.com/sitelens/sitelens/internal/logging"
	"github.com/sitelens/sitelens/internal/render"
	"github.com/sitelens/sitelens/internal/schema"
)

// ModelClient is the slice of the model client the orchestrator needs.
type ModelClient interface {
	Call(ctx context.Context, prompt string, img *ai.Image, opts ai.CallOptions) (string, error)
}

// Result is the outcome of one analysis operation.
type Result struct {
	AnalysisID  string `json:"analysis_id"`
	Fingerprint string `json:"fingerprint"`

	Page   schema.AnalyzedPage  `json:"page"`
	Dom    extract.DomStructure `json:"dom_structure"`
	Vision schema.AnalyzedPage  `json:"vision_structure"`

	Screenshot     string `json:"screenshot,omitempty"` // base64, when requested
	ScreenshotMIME string `json:"screenshot_mime,omitempty"`

	// Degraded marks that a model answer failed JSON recovery and the
	// corresponding structure is an empty-but-valid page; Diagnostic
	// carries the recovery error so callers need not guess.
	Degraded   bool   `json:"degraded"`
	Diagnostic string `json:"diagnostic,omitempty"`

	CacheHit bool `json:"cache_hit"`
}

// Orchestrator runs the analysis pipeline. Concurrent requests with
// the same fingerprint share one in-flight execution; results are
// memoized in the cache under that fingerprint.
type Orchestrator struct {
	renderer  render.Renderer
	model     ModelClient
	cache     *cache.Silent
	extractor *extract.Extractor
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	ttl       time.Duration

	group singleflight.Group
}

// New wires the pipeline together.
func New(renderer render.Renderer, model ModelClient, store *cache.Silent, logger *logging.Logger, metrics *monitoring.Metrics, ttl time.Duration) *Orchestrator {
	if logger == nil {
		logger = logging.NewDefault()
	}
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	return &Orchestrator{
		renderer:  renderer,
		model:     model,
		cache:     store,
		extractor: extract.New(),
		logger:    logger,
		metrics:   metrics,
		ttl:       ttl,
	}
}

// Analyze runs the full pipeline for one target.
func (o *Orchestrator) Analyze(ctx context.Context, req Request) (*Result, error) {
	fp := fingerprint.Build(OpAnalyze, req.params())

	if cached, ok := o.cachedResult(ctx, OpAnalyze, fp); ok {
		return cached, nil
	}

	v, err, _ := o.group.Do(fp, func() (any, error) {
		return o.analyze(ctx, req, fp)
	})
	if err != nil {
		o.metrics.RecordAnalysis(OpAnalyze, "error")
		return nil, err
	}

	result := v.(*Result)
	outcome := "ok"
	if result.Degraded {
		outcome = "degraded"
	}
	o.metrics.RecordAnalysis(OpAnalyze, outcome)
	return result, nil
}

func (o *Orchestrator) analyze(ctx context.Context, req Request, fp string) (*Result, error) {
	log := o.logger.With(zap.String("target", req.Target), zap.String("fingerprint", fp))

	html, err := o.renderStage(ctx, req, log)
	if err != nil {
		return nil, err
	}

	dom := o.extractStage(html, log)

	shot, mime, err := o.screenshotStage(ctx, req, log)
	if err != nil {
		return nil, err
	}
	img := &ai.Image{Data: shot, MIME: mime}

	domJSON, err := sonic.MarshalString(dom)
	if err != nil {
		return nil, fmt.Errorf("encode dom structure: %w", err)
	}

	vision, visionDiag, err := o.modelStage(ctx, StageVision, visionPrompt(req.Prompt, domJSON), img, req, log)
	if err != nil {
		return nil, err
	}

	visionJSON, err := sonic.MarshalString(vision)
	if err != nil {
		return nil, fmt.Errorf("encode vision structure: %w", err)
	}

	merged, mergeDiag, err := o.modelStage(ctx, StageMerge, mergePrompt(req.Prompt, domJSON, visionJSON), img, req, log)
	if err != nil {
		return nil, err
	}

	result := &Result{
		AnalysisID:  uuid.NewString(),
		Fingerprint: fp,
		Page:        merged,
		Dom:         dom,
		Vision:      vision,
		Degraded:    visionDiag != "" || mergeDiag != "",
		Diagnostic:  joinDiagnostics(visionDiag, mergeDiag),
	}
	if req.wantsScreenshot() {
		result.Screenshot = base64.StdEncoding.EncodeToString(shot)
		result.ScreenshotMIME = mime
	}

	o.store(ctx, fp, result)
	log.Info("analysis complete",
		zap.String("analysis_id", result.AnalysisID),
		zap.Bool("degraded", result.Degraded),
		zap.Int("sections", len(result.Page.Sections)))
	return result, nil
}

// HTML renders the target and returns its markup, memoized.
func (o *Orchestrator) HTML(ctx context.Context, req Request) (string, bool, error) {
	fp := fingerprint.Build(OpHTML, req.params())

	if val, ok := o.cache.Get(ctx, fp); ok {
		o.metrics.RecordCacheHit(OpHTML)
		return val, true, nil
	}
	o.metrics.RecordCacheMiss(OpHTML)

	v, err, _ := o.group.Do(fp, func() (any, error) {
		html, err := o.renderStage(ctx, req, o.logger.With(zap.String("target", req.Target)))
		if err != nil {
			return nil, err
		}
		o.cache.Put(ctx, fp, html, o.ttl)
		return html, nil
	})
	if err != nil {
		o.metrics.RecordAnalysis(OpHTML, "error")
		return "", false, err
	}
	o.metrics.RecordAnalysis(OpHTML, "ok")
	return v.(string), false, nil
}

// Structure renders the target and extracts its markup structure,
// memoized.
func (o *Orchestrator) Structure(ctx context.Context, req Request) (extract.DomStructure, bool, error) {
	fp := fingerprint.Build(OpStructure, req.params())

	var dom extract.DomStructure
	if val, ok := o.cache.Get(ctx, fp); ok {
		if err := sonic.UnmarshalString(val, &dom); err == nil {
			o.metrics.RecordCacheHit(OpStructure)
			return dom, true, nil
		}
	}
	o.metrics.RecordCacheMiss(OpStructure)

	v, err, _ := o.group.Do(fp, func() (any, error) {
		log := o.logger.With(zap.String("target", req.Target))
		html, err := o.renderStage(ctx, req, log)
		if err != nil {
			return nil, err
		}
		dom := o.extractStage(html, log)
		if encoded, err := sonic.MarshalString(dom); err == nil {
			o.cache.Put(ctx, fp, encoded, o.ttl)
		}
		return dom, nil
	})
	if err != nil {
		o.metrics.RecordAnalysis(OpStructure, "error")
		return extract.DomStructure{}, false, err
	}
	o.metrics.RecordAnalysis(OpStructure, "ok")
	return v.(extract.DomStructure), false, nil
}

// screenshotPayload is the cached form of a capture.
type screenshotPayload struct {
	Data string `json:"data"` // base64
	MIME string `json:"mime"`
}

// Screenshot captures the target, memoized.
func (o *Orchestrator) Screenshot(ctx context.Context, req Request) ([]byte, string, bool, error) {
	fp := fingerprint.Build(OpScreenshot, req.params())

	if val, ok := o.cache.Get(ctx, fp); ok {
		var payload screenshotPayload
		if err := sonic.UnmarshalString(val, &payload); err == nil {
			if data, err := base64.StdEncoding.DecodeString(payload.Data); err == nil {
				o.metrics.RecordCacheHit(OpScreenshot)
				return data, payload.MIME, true, nil
			}
		}
	}
	o.metrics.RecordCacheMiss(OpScreenshot)

	type captured struct {
		data []byte
		mime string
	}
	v, err, _ := o.group.Do(fp, func() (any, error) {
		log := o.logger.With(zap.String("target", req.Target))
		data, mime, err := o.screenshotStage(ctx, req, log)
		if err != nil {
			return nil, err
		}
		payload := screenshotPayload{Data: base64.StdEncoding.EncodeToString(data), MIME: mime}
		if encoded, err := sonic.MarshalString(payload); err == nil {
			o.cache.Put(ctx, fp, encoded, o.ttl)
		}
		return captured{data: data, mime: mime}, nil
	})
	if err != nil {
		o.metrics.RecordAnalysis(OpScreenshot, "error")
		return nil, "", false, err
	}
	o.metrics.RecordAnalysis(OpScreenshot, "ok")
	shot := v.(captured)
	return shot.data, shot.mime, false, nil
}

// Purge drops every cached entry for an operation and returns how many
// were removed.
func (o *Orchestrator) Purge(ctx context.Context, operation string) int {
	count := o.cache.DeleteByPrefix(ctx, operation+":")
	o.logger.Info("cache purged", zap.String("operation", operation), zap.Int("deleted", count))
	return count
}

func (o *Orchestrator) renderStage(ctx context.Context, req Request, log *logging.Logger) (string, error) {
	timer := monitoring.NewStageTimer(o.metrics, StageRender)
	html, err := o.renderer.Render(ctx, req.Target)
	timer.Stop(err)
	if err != nil {
		log.Error("render failed", zap.String("stage", StageRender), zap.Error(err))
		return "", err
	}
	log.Debug("rendered", zap.String("stage", StageRender), zap.Int("html_bytes", len(html)))
	return html, nil
}

func (o *Orchestrator) extractStage(html string, log *logging.Logger) extract.DomStructure {
	timer := monitoring.NewStageTimer(o.metrics, StageExtractDOM)
	dom := o.extractor.Extract(html)
	timer.Stop(nil)
	log.Debug("structure extracted",
		zap.String("stage", StageExtractDOM),
		zap.Int("sections", len(dom.Sections)),
		zap.Int("nav_links", len(dom.Header.NavLinks)))
	return dom
}

func (o *Orchestrator) screenshotStage(ctx context.Context, req Request, log *logging.Logger) ([]byte, string, error) {
	timer := monitoring.NewStageTimer(o.metrics, StageScreenshot)
	data, mime, err := o.renderer.Screenshot(ctx, req.Target, req.options())
	timer.Stop(err)
	if err != nil {
		log.Error("screenshot failed", zap.String("stage", StageScreenshot), zap.Error(err))
		return nil, "", err
	}
	log.Debug("screenshot captured",
		zap.String("stage", StageScreenshot),
		zap.String("mime", mime),
		zap.Int("bytes", len(data)))
	return data, mime, nil
}

// modelStage calls the model and coerces its answer into the schema.
// A non-empty diagnostic means the answer failed JSON recovery and the
// returned page is empty-but-valid.
func (o *Orchestrator) modelStage(ctx context.Context, stage, prompt string, img *ai.Image, req Request, log *logging.Logger) (schema.AnalyzedPage, string, error) {
	timer := monitoring.NewStageTimer(o.metrics, stage)
	start := time.Now()
	raw, err := o.model.Call(ctx, prompt, img, ai.CallOptions{Model: req.Model, Format: req.Format})
	o.metrics.RecordAIRequest(time.Since(start), err)
	timer.Stop(err)
	if err != nil {
		log.Error("model call failed", zap.String("stage", stage), zap.Error(err))
		return schema.AnalyzedPage{}, "", err
	}

	value := schema.Normalize(raw)
	diagnostic := ""
	if msg, rawText, ok := schema.Diagnostic(value); ok {
		diagnostic = fmt.Sprintf("%s: %s", stage, msg)
		log.Warn("model output not recoverable",
			zap.String("stage", stage),
			zap.Int("raw_len", len(rawText)))
	}
	return schema.Sanitize(value), diagnostic, nil
}

func (o *Orchestrator) cachedResult(ctx context.Context, operation, fp string) (*Result, bool) {
	val, ok := o.cache.Get(ctx, fp)
	if !ok {
		o.metrics.RecordCacheMiss(operation)
		return nil, false
	}

	var result Result
	if err := sonic.UnmarshalString(val, &result); err != nil {
		o.metrics.RecordCacheMiss(operation)
		return nil, false
	}
	o.metrics.RecordCacheHit(operation)
	result.CacheHit = true
	return &result, true
}

func (o *Orchestrator) store(ctx context.Context, fp string, result *Result) {
	encoded, err := sonic.MarshalString(result)
	if err != nil {
		o.logger.Warn("result encode failed", zap.String("fingerprint", fp), zap.Error(err))
		return
	}
	o.cache.Put(ctx, fp, encoded, o.ttl)
}

func joinDiagnostics(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "; " + b
	}
}
