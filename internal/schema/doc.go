// Package schema defines the strict page-analysis output shape and the
// two total functions that force arbitrary model output into it.
//
// Normalize turns whatever a model returned (a parsed object, clean
// JSON text, or JSON buried in prose) into a best-effort JSON value,
// falling back to an error envelope instead of failing. Sanitize then
// coerces any JSON value into a structurally valid AnalyzedPage. Both
// functions are pure and never return an error; Sanitize is idempotent.
package schema
