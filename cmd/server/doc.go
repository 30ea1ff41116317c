// Package main is the entry point for the sitelens server.
//
// The service renders a target web page, extracts its markup
// structure, screenshots it, and reconciles both views through a
// vision-capable model into one schema-conformant description.
//
// Pipeline:
//
//	render → extract structure → screenshot → vision pass → merge pass
//
// The server provides:
//   - REST API for analysis, raw markup, structure, and screenshots
//   - Fingerprint-keyed caching (in-memory or Redis)
//   - Prometheus metrics and request tracing
//   - Rate limiting
//
// Configuration:
//   - Environment variables (12-factor), optionally from a .env file
//   - Defaults for development
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
