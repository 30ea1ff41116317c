/*
Package monitoring provides performance monitoring and metrics collection.

# Overview

This package implements Prometheus-based metrics collection for the
analysis service, tracking HTTP requests, pipeline stages, model calls,
cache effectiveness, and system metrics.

# Features

- HTTP request metrics (latency, throughput, size)
- Pipeline stage metrics (duration, failures per stage)
- Model request metrics (latency, errors)
- Cache hit/miss counters per operation
- System metrics (uptime)

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time a pipeline stage
	timer := monitoring.NewStageTimer(metrics, "render")
	// ... perform stage ...
	timer.Stop(err)

# Metrics Endpoint

Expose metrics via the collector's own registry:

	router.GET("/metrics", metrics.Handler())
*/
package monitoring
