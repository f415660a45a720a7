// Package observe provides BuildObserver implementations for the
// reconciliation engine: Prometheus metrics and OpenTelemetry tracing.
//
// Attach them when constructing a builder:
//
//	builder := recon.NewBuilder(
//	    observe.NewMetrics(),
//	    observe.NewTracing(),
//	)
package observe
