package render

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// lazyScrollScript walks the page viewport by viewport so lazy-loaded
// content appears before a full-page capture, then returns to the top.
const lazyScrollScript = `new Promise((resolve) => {
	let scrolled = 0;
	const step = () => {
		window.scrollBy(0, window.innerHeight);
		scrolled += window.innerHeight;
		if (scrolled < document.body.scrollHeight) {
			setTimeout(step, 100);
		} else {
			window.scrollTo(0, 0);
			setTimeout(resolve, 200);
		}
	};
	step();
})`

// ChromeConfig carries headless browser settings.
type ChromeConfig struct {
	Timeout   time.Duration
	UserAgent string
	ExecPath  string // empty = auto-detect
}

// Chrome renders pages in headless Chrome. One browser process is
// shared; every request gets its own tab.
type Chrome struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	timeout  time.Duration
}

// NewChrome starts the browser allocator. The browser itself launches
// lazily on the first request.
func NewChrome(cfg ChromeConfig) *Chrome {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("headless", "new"),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &Chrome{allocCtx: allocCtx, cancel: cancel, timeout: cfg.Timeout}
}

func (c *Chrome) Render(ctx context.Context, url string) (string, error) {
	tabCtx, cancel := c.tab(ctx)
	defer cancel()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chrome render %s: %w", url, err)
	}
	return html, nil
}

func (c *Chrome) Screenshot(ctx context.Context, url string, opts Options) ([]byte, string, error) {
	o := opts.withDefaults()

	tabCtx, cancel := c.tab(ctx)
	defer cancel()

	tasks := chromedp.Tasks{
		emulation.SetDeviceMetricsOverride(int64(o.Width), int64(o.Height), 1, false),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if o.WaitSelector != "" {
		tasks = append(tasks, chromedp.WaitVisible(o.WaitSelector, chromedp.ByQuery))
	}
	if o.WaitMS > 0 {
		tasks = append(tasks, chromedp.Sleep(time.Duration(o.WaitMS)*time.Millisecond))
	}
	if o.FullPage {
		tasks = append(tasks, chromedp.Evaluate(lazyScrollScript, nil, awaitPromise))
	}

	var shot []byte
	tasks = append(tasks, chromedp.ActionFunc(func(ctx context.Context) error {
		capture := page.CaptureScreenshot().
			WithCaptureBeyondViewport(o.FullPage)
		if o.ImageType == "jpeg" {
			capture = capture.
				WithFormat(page.CaptureScreenshotFormatJpeg).
				WithQuality(int64(o.Quality))
		} else {
			capture = capture.WithFormat(page.CaptureScreenshotFormatPng)
		}
		var err error
		shot, err = capture.Do(ctx)
		return err
	}))

	if err := chromedp.Run(tabCtx, tasks); err != nil {
		return nil, "", fmt.Errorf("chrome screenshot %s: %w", url, err)
	}
	return shot, o.mime(), nil
}

func (c *Chrome) Close() error {
	c.cancel()
	return nil
}

// tab opens a fresh tab context bounded by the engine timeout and the
// caller's context.
func (c *Chrome) tab(ctx context.Context) (context.Context, context.CancelFunc) {
	tabCtx, tabCancel := chromedp.NewContext(c.allocCtx)
	timedCtx, timeCancel := context.WithTimeout(tabCtx, c.timeout)
	stop := context.AfterFunc(ctx, timeCancel)

	return timedCtx, func() {
		stop()
		timeCancel()
		tabCancel()
	}
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}
