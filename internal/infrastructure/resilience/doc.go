// Package resilience provides a three-state circuit breaker used to
// shield the pipeline from a failing model endpoint.
//
// Transitions:
//
//	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
//
// In the open state requests fail immediately with ErrCircuitOpen; the
// half-open state admits a bounded number of probes before deciding.
package resilience
