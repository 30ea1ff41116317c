package pipeline

import (
	"strconv"

	"github.com/sitelens/sitelens/internal/render"
)

// Operations, used as cache key prefixes and metric labels.
const (
	OpAnalyze    = "analyze"
	OpHTML       = "html"
	OpStructure  = "structure"
	OpScreenshot = "screenshot"
)

// Pipeline stages in execution order.
const (
	StageRender     = "render"
	StageExtractDOM = "extract_dom"
	StageScreenshot = "screenshot"
	StageVision     = "vision_request"
	StageMerge      = "merge_request"
)

// Request carries one analysis request. All fields are raw strings as
// they arrive on the transport; absent parameters stay empty and do
// not participate in the fingerprint.
type Request struct {
	Target            string
	Width             string
	Height            string
	FullPage          string
	ImageType         string
	Quality           string
	Wait              string
	Selector          string
	Model             string
	Format            string
	Prompt            string
	IncludeScreenshot string
}

// params maps the set fields onto fingerprint parameter names.
func (r Request) params() map[string]string {
	out := make(map[string]string)
	set := func(key, val string) {
		if val != "" {
			out[key] = val
		}
	}
	set("target", r.Target)
	set("width", r.Width)
	set("height", r.Height)
	set("fullPage", r.FullPage)
	set("type", r.ImageType)
	set("quality", r.Quality)
	set("wait", r.Wait)
	set("selector", r.Selector)
	set("model", r.Model)
	set("format", r.Format)
	set("prompt", r.Prompt)
	set("includeScreenshot", r.IncludeScreenshot)
	return out
}

// options parses the screenshot parameters leniently: malformed
// numbers fall back to engine defaults rather than failing the
// request.
func (r Request) options() render.Options {
	return render.Options{
		Width:        atoi(r.Width),
		Height:       atoi(r.Height),
		FullPage:     isTrue(r.FullPage),
		ImageType:    r.ImageType,
		Quality:      atoi(r.Quality),
		WaitMS:       atoi(r.Wait),
		WaitSelector: r.Selector,
	}
}

func (r Request) wantsScreenshot() bool {
	return isTrue(r.IncludeScreenshot)
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func isTrue(s string) bool {
	return s == "true" || s == "1"
}
