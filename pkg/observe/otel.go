package observe

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/loom-ui/loom/pkg/recon"
)

// Default tracer name for Loom build tracing.
const defaultTracerName = "loom"

// OTelConfig configures the OpenTelemetry build observer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "loom").
	TracerName string

	// AttributeExtractor extracts custom attributes from the pass
	// summary. Called for each traced pass.
	AttributeExtractor func(stats recon.BuildStats) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry build observer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(stats recon.BuildStats) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// Tracing is a recon.BuildObserver that records one span per build pass.
//
// The span carries the trigger, the generation, and the pass's node and
// render counts. It is created when the pass finishes, backdated to the
// pass start so the span duration matches the build duration.
//
// The tracer comes from the global OpenTelemetry tracer provider;
// configure it in main() before building:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//	builder := recon.NewBuilder(observe.NewTracing())
type Tracing struct {
	recon.NopObserver
	config OTelConfig
}

var _ recon.BuildObserver = (*Tracing)(nil)

// NewTracing creates the tracing observer.
func NewTracing(opts ...OTelOption) *Tracing {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)
	return &Tracing{config: config}
}

// BuildFinished implements recon.BuildObserver.
func (t *Tracing) BuildFinished(root *recon.ScopeRoot, stats recon.BuildStats) {
	attrs := []attribute.KeyValue{
		attribute.String("loom.trigger", stats.Trigger.String()),
		attribute.Int64("loom.generation", int64(stats.Generation)),
		attribute.Int("loom.nodes_built", stats.NodesBuilt),
		attribute.Int("loom.nodes_reused", stats.NodesReused),
		attribute.Int("loom.renders", stats.Renders),
		attribute.Int("loom.state_updates_applied", stats.StateUpdatesApplied),
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(stats)...)
	}

	_, span := t.config.tracer.Start(
		context.Background(),
		"loom.build "+stats.Trigger.String(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(stats.StartedAt),
	)
	span.End(trace.WithTimestamp(stats.StartedAt.Add(stats.Duration)))
}
