package middleware

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-scoreboard/internal/domain"
	"github.com/ahrav/go-scoreboard/internal/ports"
)

var _ ports.MutationObserver = (*OTelMutationObserver)(nil)

// OTelMutationObserver implements observability for state mutations using
// OpenTelemetry tracing. It opens a span per mutation, records the outcome
// on it and forwards latency and counters to a MetricsCollector.
type OTelMutationObserver struct {
	tracer  trace.Tracer
	metrics ports.MetricsCollector
}

// ObserverOption configures an OTelMutationObserver.
type ObserverOption func(*OTelMutationObserver)

// WithTracerProvider takes spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) ObserverOption {
	return func(o *OTelMutationObserver) { o.tracer = tp.Tracer(tracerName) }
}

const tracerName = "scoreboard"

// NewOTelMutationObserver creates a new observer. metrics may be nil.
func NewOTelMutationObserver(metrics ports.MetricsCollector, opts ...ObserverOption) *OTelMutationObserver {
	o := &OTelMutationObserver{
		tracer:  otel.Tracer(tracerName),
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// PreMutation implements the MutationObserver interface. It starts a span
// named after the operation and returns the context carrying it.
func (o *OTelMutationObserver) PreMutation(ctx context.Context, op string) context.Context {
	ctx, _ = o.tracer.Start(ctx, "scoreboard."+op,
		trace.WithAttributes(attribute.String("scoreboard.operation", op)),
	)
	return ctx
}

// PostMutation implements the MutationObserver interface. It classifies the
// error, finalizes the span and records metrics.
func (o *OTelMutationObserver) PostMutation(
	ctx context.Context,
	op string,
	elapsed time.Duration,
	err error,
) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	status := Status(err)
	span.SetAttributes(attribute.String("scoreboard.status", status))

	if o.metrics != nil {
		o.metrics.RecordLatency(op, elapsed, nil)
		o.metrics.RecordCounter(op, 1, map[string]string{"status": status})
	}

	if err != nil {
		span.AddEvent("mutation.rejected", trace.WithAttributes(
			attribute.String("error", err.Error()),
		))
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

// Status maps a mutation error to a metric label: success, validation_error,
// not_found or error.
func Status(err error) string {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &verr):
		return "validation_error"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
