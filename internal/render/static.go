package render

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// Static fetches raw markup over plain HTTP. It cannot run scripts or
// capture pixels, but it needs no browser and suits mostly-static
// sites.
type Static struct {
	http *resty.Client
}

// NewStatic creates the plain-HTTP engine. Transient fetch failures
// retry twice with backoff.
func NewStatic(timeout time.Duration, userAgent string) *Static {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	httpClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err == nil && r.StatusCode() >= 500
		}).
		SetTransport(retryClient.HTTPClient.Transport)
	if userAgent != "" {
		httpClient.SetHeader("User-Agent", userAgent)
	}

	return &Static{http: httpClient}
}

func (s *Static) Render(ctx context.Context, url string) (string, error) {
	resp, err := s.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}
	return resp.String(), nil
}

func (s *Static) Screenshot(context.Context, string, Options) ([]byte, string, error) {
	return nil, "", ErrScreenshotUnsupported
}

func (s *Static) Close() error {
	return nil
}
