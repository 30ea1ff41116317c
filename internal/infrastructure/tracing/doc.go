// Package tracing provides lightweight request tracing for the HTTP
// surface.
//
// It follows OpenTelemetry concepts with a minimal implementation:
// trace context propagates via the X-Trace-ID and X-Span-ID headers,
// spans are collected on a buffered channel and logged through zap,
// and spans slower than a threshold are flagged.
//
// Usage:
//
//	tracer := tracing.New("sitelens", logger)
//	router.Use(tracing.HTTPMiddleware(tracer))
//
//	span, ctx := tracer.StartSpan(ctx, "operation")
//	defer span.Finish()
package tracing
