// Package ai calls the vision/merge model endpoint and extracts the
// model's textual output from its response envelope.
package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
)

// Sentinel errors mapped to transport status codes by the API layer.
var (
	// ErrUnavailable means no model endpoint is configured.
	ErrUnavailable = errors.New("ai endpoint not configured")

	// ErrTimeout means the model did not answer within the deadline.
	ErrTimeout = errors.New("ai request timed out")
)

// UpstreamError is a non-2xx answer from the model endpoint, carried
// verbatim so callers can surface the provider's own diagnostics.
type UpstreamError struct {
	Status  int
	Payload string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ai upstream returned %d: %s", e.Status, e.Payload)
}

// Config carries model endpoint settings.
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Format   string
	Timeout  time.Duration
}

// Client is the model endpoint client. Model calls are never retried;
// a failed analysis stage must propagate, not silently re-run.
type Client struct {
	http *resty.Client
	cfg  Config
}

// CallOptions override per-call model settings.
type CallOptions struct {
	Model   string
	Format  string
	Timeout time.Duration
}

// NewClient creates a model client from config. The client is safe for
// concurrent use.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	httpClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetTransport(retryClient.HTTPClient.Transport)
	if cfg.APIKey != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}

	return &Client{http: httpClient, cfg: cfg}
}

// Call sends a prompt, optionally with an image, and returns the
// model's raw textual output. The caller normalizes and sanitizes it.
func (c *Client) Call(ctx context.Context, prompt string, img *Image, opts CallOptions) (string, error) {
	if c.cfg.Endpoint == "" {
		return "", ErrUnavailable
	}

	model := opts.Model
	if model == "" {
		model = c.cfg.Model
	}
	format := opts.Format
	if format == "" {
		format = c.cfg.Format
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(callCtx).
		SetBody(buildRequest(model, format, prompt, img)).
		Post(c.cfg.Endpoint)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
		}
		return "", fmt.Errorf("ai request: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", &UpstreamError{Status: resp.StatusCode(), Payload: resp.String()}
	}

	return ExtractText(resp.Body()), nil
}
