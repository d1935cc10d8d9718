// Package orchestrator wires the table -> view -> renderer pipeline,
// providing dependency injection friendly helpers for consumers that prefer
// a single entry point.
package orchestrator
