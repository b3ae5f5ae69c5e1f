package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// ScopeName is the instrumentation scope of the toast instruments.
const ScopeName = "github.com/dmitrymomot/toastkit"

// Observer records scheduler events as OpenTelemetry metrics.
// Observe must be called from a single timeline, which is how the scheduler
// delivers events.
type Observer struct {
	submitted      metric.Int64Counter
	completed      metric.Int64Counter
	discarded      metric.Int64Counter
	renderFailures metric.Int64Counter
	queueDepth     metric.Int64UpDownCounter
	presentation   metric.Float64Histogram

	pending int
}

// NewObserver creates the instruments on meter.
func NewObserver(meter metric.Meter) (*Observer, error) {
	o := &Observer{}
	var err error

	if o.submitted, err = meter.Int64Counter("toast_submitted_total",
		metric.WithDescription("Total number of toasts admitted to the scheduler"),
	); err != nil {
		return nil, fmt.Errorf("create submitted counter: %w", err)
	}
	if o.completed, err = meter.Int64Counter("toast_completed_total",
		metric.WithDescription("Total number of presentations that reached completion"),
	); err != nil {
		return nil, fmt.Errorf("create completed counter: %w", err)
	}
	if o.discarded, err = meter.Int64Counter("toast_discarded_total",
		metric.WithDescription("Total number of queued toasts dropped before presentation"),
	); err != nil {
		return nil, fmt.Errorf("create discarded counter: %w", err)
	}
	if o.renderFailures, err = meter.Int64Counter("toast_render_failures_total",
		metric.WithDescription("Total number of toasts the renderer could not materialize"),
	); err != nil {
		return nil, fmt.Errorf("create render failures counter: %w", err)
	}
	if o.queueDepth, err = meter.Int64UpDownCounter("toast_queue_depth",
		metric.WithDescription("Number of toasts waiting for presentation"),
	); err != nil {
		return nil, fmt.Errorf("create queue depth counter: %w", err)
	}
	if o.presentation, err = meter.Float64Histogram("toast_presentation_seconds",
		metric.WithDescription("Time from render start to completion"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("create presentation histogram: %w", err)
	}
	return o, nil
}

// Observe implements toast.Observer.
func (o *Observer) Observe(ev toast.Event) {
	ctx := context.Background()

	if delta := ev.Pending - o.pending; delta != 0 {
		o.queueDepth.Add(ctx, int64(delta))
		o.pending = ev.Pending
	}

	switch ev.Kind {
	case toast.EventSubmitted:
		o.submitted.Add(ctx, 1)
	case toast.EventDiscarded:
		o.discarded.Add(ctx, 1)
	case toast.EventCompleted:
		reason := metric.WithAttributes(attribute.String("reason", string(ev.Reason)))
		o.completed.Add(ctx, 1, reason)
		if ev.Reason == toast.ReasonRenderFailed {
			o.renderFailures.Add(ctx, 1)
			return
		}
		o.presentation.Record(ctx, ev.Elapsed.Seconds(), reason)
	}
}
