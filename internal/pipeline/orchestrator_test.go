package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitelens/sitelens/internal/ai"
	"github.com/sitelens/sitelens/internal/cache"
	"github.com/sitelens/sitelens/internal/render"
)

const testHTML = `<header><img class="logo" src="/l.png"></header>` +
	`<section><h2>Hi</h2><p>1234567890a</p></section>` +
	`<footer><p>© 2024</p></footer>`

type fakeRenderer struct {
	html        string
	renderErr   error
	shotErr     error
	renderCalls int
	shotCalls   int
}

func (f *fakeRenderer) Render(_ context.Context, _ string) (string, error) {
	f.renderCalls++
	if f.renderErr != nil {
		return "", f.renderErr
	}
	return f.html, nil
}

func (f *fakeRenderer) Screenshot(_ context.Context, _ string, _ render.Options) ([]byte, string, error) {
	f.shotCalls++
	if f.shotErr != nil {
		return nil, "", f.shotErr
	}
	return []byte{0x89, 'P', 'N', 'G'}, "image/png", nil
}

func (f *fakeRenderer) Close() error { return nil }

type fakeModel struct {
	responses []string
	err       error
	prompts   []string
	calls     int
}

func (f *fakeModel) Call(_ context.Context, prompt string, _ *ai.Image, _ ai.CallOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return `{"page_intent":"","sections":[]}`, nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func newTestOrchestrator(r render.Renderer, m ModelClient) *Orchestrator {
	return New(r, m, cache.NewSilent(cache.NewMemory(), nil), nil, nil, time.Minute)
}

func TestAnalyzeHappyPath(t *testing.T) {
	renderer := &fakeRenderer{html: testHTML}
	model := &fakeModel{responses: []string{
		`{"page_intent":"vision reading","sections":[{"type":"hero","elements":[]}]}`,
		`{"page_intent":"merged reading","sections":[{"type":"hero","elements":[]},{"type":"footer","elements":[]}]}`,
	}}
	o := newTestOrchestrator(renderer, model)

	result, err := o.Analyze(context.Background(), Request{Target: "https://example.com"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.AnalysisID)
	assert.True(t, strings.HasPrefix(result.Fingerprint, "analyze:"))
	assert.False(t, result.CacheHit)
	assert.False(t, result.Degraded)

	// Vision then merge, two model calls total.
	assert.Equal(t, 2, model.calls)
	assert.Contains(t, model.prompts[0], "vision")
	assert.Contains(t, model.prompts[1], "merge")

	assert.Equal(t, "vision reading", result.Vision.PageIntent)
	assert.Equal(t, "merged reading", result.Page.PageIntent)
	require.Len(t, result.Page.Sections, 2)
	assert.Equal(t, "sec_000", result.Page.Sections[0].ID)

	require.NotNil(t, result.Dom.Header.Logo)
	assert.Equal(t, "/l.png", result.Dom.Header.Logo.Src)
}

func TestAnalyzeCacheHit(t *testing.T) {
	renderer := &fakeRenderer{html: testHTML}
	model := &fakeModel{}
	o := newTestOrchestrator(renderer, model)
	req := Request{Target: "https://example.com"}

	first, err := o.Analyze(context.Background(), req)
	require.NoError(t, err)

	second, err := o.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, second.CacheHit)
	assert.Equal(t, first.AnalysisID, second.AnalysisID)
	assert.Equal(t, 1, renderer.renderCalls)
	assert.Equal(t, 2, model.calls)
}

func TestAnalyzeDegradedOnUnrecoverableModelOutput(t *testing.T) {
	renderer := &fakeRenderer{html: testHTML}
	model := &fakeModel{responses: []string{
		"I cannot see the page clearly",
		`{"page_intent":"merged","sections":[]}`,
	}}
	o := newTestOrchestrator(renderer, model)

	result, err := o.Analyze(context.Background(), Request{Target: "https://example.com"})

	require.NoError(t, err)
	assert.True(t, result.Degraded)
	assert.Contains(t, result.Diagnostic, StageVision)
	// The degraded reading is still shape-valid.
	assert.NotNil(t, result.Vision.Sections)
	assert.Equal(t, "merged", result.Page.PageIntent)
}

func TestAnalyzeRenderFailurePropagates(t *testing.T) {
	renderer := &fakeRenderer{renderErr: errors.New("navigation refused")}
	model := &fakeModel{}
	o := newTestOrchestrator(renderer, model)

	_, err := o.Analyze(context.Background(), Request{Target: "https://example.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "navigation refused")
	assert.Zero(t, model.calls)
}

func TestAnalyzeModelFailurePropagates(t *testing.T) {
	renderer := &fakeRenderer{html: testHTML}
	model := &fakeModel{err: ai.ErrUnavailable}
	o := newTestOrchestrator(renderer, model)

	_, err := o.Analyze(context.Background(), Request{Target: "https://example.com"})

	assert.ErrorIs(t, err, ai.ErrUnavailable)
}

func TestAnalyzeIncludesScreenshotOnRequest(t *testing.T) {
	o := newTestOrchestrator(&fakeRenderer{html: testHTML}, &fakeModel{})

	with, err := o.Analyze(context.Background(), Request{Target: "https://a", IncludeScreenshot: "true"})
	require.NoError(t, err)
	assert.NotEmpty(t, with.Screenshot)
	assert.Equal(t, "image/png", with.ScreenshotMIME)

	without, err := o.Analyze(context.Background(), Request{Target: "https://a"})
	require.NoError(t, err)
	assert.Empty(t, without.Screenshot)
}

func TestHTMLOperationMemoized(t *testing.T) {
	renderer := &fakeRenderer{html: testHTML}
	o := newTestOrchestrator(renderer, &fakeModel{})
	req := Request{Target: "https://example.com"}

	html, hit, err := o.HTML(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, testHTML, html)

	html, hit, err = o.HTML(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, testHTML, html)
	assert.Equal(t, 1, renderer.renderCalls)
}

func TestStructureOperation(t *testing.T) {
	o := newTestOrchestrator(&fakeRenderer{html: testHTML}, &fakeModel{})
	req := Request{Target: "https://example.com"}

	dom, hit, err := o.Structure(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, dom.Sections, 1)
	assert.Equal(t, "Hi", dom.Sections[0].Heading.Text)

	dom, hit, err = o.Structure(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "Hi", dom.Sections[0].Heading.Text)
}

func TestScreenshotOperation(t *testing.T) {
	renderer := &fakeRenderer{html: testHTML}
	o := newTestOrchestrator(renderer, &fakeModel{})
	req := Request{Target: "https://example.com", Width: "800"}

	data, mime, hit, err := o.Screenshot(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "image/png", mime)
	assert.NotEmpty(t, data)

	data2, _, hit, err := o.Screenshot(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, data, data2)
	assert.Equal(t, 1, renderer.shotCalls)
}

func TestPurgeDropsOnlyOneOperation(t *testing.T) {
	o := newTestOrchestrator(&fakeRenderer{html: testHTML}, &fakeModel{})
	ctx := context.Background()

	_, _, err := o.HTML(ctx, Request{Target: "https://a"})
	require.NoError(t, err)
	_, _, err = o.Structure(ctx, Request{Target: "https://a"})
	require.NoError(t, err)

	deleted := o.Purge(ctx, OpHTML)

	assert.Equal(t, 1, deleted)
	_, hit, err := o.Structure(ctx, Request{Target: "https://a"})
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestRequestParamsOmitUnset(t *testing.T) {
	params := Request{Target: "https://a", Width: "800"}.params()

	assert.Equal(t, map[string]string{"target": "https://a", "width": "800"}, params)
}

func TestRequestOptionsLenientParsing(t *testing.T) {
	opts := Request{Width: "not-a-number", Height: "600", FullPage: "true", Quality: "90"}.options()

	assert.Zero(t, opts.Width)
	assert.Equal(t, 600, opts.Height)
	assert.True(t, opts.FullPage)
	assert.Equal(t, 90, opts.Quality)
}
