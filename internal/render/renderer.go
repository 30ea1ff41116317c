// Package render turns a target URL into rendered HTML and screenshot
// bytes. Two engines exist: headless Chrome for JavaScript-heavy pages
// and a plain HTTP fetcher for static markup.
package render

import (
	"context"
	"errors"
)

// ErrScreenshotUnsupported is returned by engines that cannot capture
// pixels.
var ErrScreenshotUnsupported = errors.New("screenshot capture requires the chrome render engine")

// Screenshot defaults.
const (
	DefaultWidth   = 1280
	DefaultHeight  = 800
	DefaultQuality = 80
)

// Options control screenshot capture. The zero value means defaults.
type Options struct {
	Width        int
	Height       int
	FullPage     bool
	ImageType    string // "png" or "jpeg"
	Quality      int    // jpeg only, 1-100
	WaitMS       int    // fixed settle delay after load
	WaitSelector string // CSS selector to wait for before capture
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.ImageType != "jpeg" {
		o.ImageType = "png"
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

func (o Options) mime() string {
	if o.ImageType == "jpeg" {
		return "image/jpeg"
	}
	return "image/png"
}

// Renderer produces page artifacts for a target URL.
type Renderer interface {
	// Render returns the page's HTML after the engine considers it
	// loaded.
	Render(ctx context.Context, url string) (string, error)

	// Screenshot captures the page as image bytes, returning the MIME
	// type alongside.
	Screenshot(ctx context.Context, url string, opts Options) ([]byte, string, error)

	// Close releases engine resources.
	Close() error
}
