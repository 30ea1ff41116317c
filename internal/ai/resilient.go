package ai

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sitelens/sitelens/internal/infrastructure/resilience"
	"github.com/sitelens/sitelens/internal/logging"
)

// Caller is the model-invocation surface Resilient decorates.
type Caller interface {
	Call(ctx context.Context, prompt string, img *Image, opts CallOptions) (string, error)
}

// Resilient wraps a model client with a circuit breaker. When the
// endpoint keeps failing, calls are rejected immediately with
// ErrUnavailable instead of queueing up behind timeouts.
type Resilient struct {
	client  Caller
	breaker *resilience.Breaker
}

// NewResilient decorates a client with a circuit breaker.
func NewResilient(client Caller, logger *logging.Logger) *Resilient {
	breaker := resilience.New("model", resilience.Settings{
		MaxRequests: 2,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to resilience.State) {
			if logger != nil {
				logger.Warn("circuit state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			}
		},
	})
	return &Resilient{client: client, breaker: breaker}
}

// Call invokes the wrapped client through the breaker. Only endpoint
// health failures trip it; rejections the endpoint answered itself
// (4xx) pass through without counting.
func (r *Resilient) Call(ctx context.Context, prompt string, img *Image, opts CallOptions) (string, error) {
	var text string
	var callErr error

	_, err := r.breaker.Execute(func() (any, error) {
		text, callErr = r.client.Call(ctx, prompt, img, opts)
		if callErr != nil && !countsAsFailure(callErr) {
			return nil, nil
		}
		return nil, callErr
	})
	if errors.Is(err, resilience.ErrCircuitOpen) || errors.Is(err, resilience.ErrTooManyRequests) {
		return "", fmt.Errorf("model endpoint suspended: %w", ErrUnavailable)
	}
	return text, callErr
}

// State exposes the breaker state for health reporting.
func (r *Resilient) State() resilience.State {
	return r.breaker.State()
}

// countsAsFailure reports whether an error indicates endpoint health
// trouble rather than a fault in the request itself.
func countsAsFailure(err error) bool {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Status >= 500 || upstream.Status == 429
	}
	return true
}
