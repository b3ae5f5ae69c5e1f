// Package telemetry exports toast scheduler activity as OpenTelemetry
// metrics. Register the observer with the scheduler:
//
//	obs, err := telemetry.NewObserver(otel.Meter(telemetry.ScopeName))
//	if err != nil {
//		return err
//	}
//	sched, err := toast.New(renderer, toast.WithObserver(obs.Observe))
//
// Instruments: toast_submitted_total, toast_completed_total{reason},
// toast_discarded_total, toast_render_failures_total, toast_queue_depth and
// toast_presentation_seconds{reason}. Render failures are not recorded in
// the histogram since nothing was shown.
//
// Setup installs OTLP/HTTP trace and metric providers when export is enabled:
//
//	p, err := telemetry.Setup(ctx, cfg, "toastd")
//	if err != nil {
//		return err
//	}
//	defer p.Shutdown(context.Background())
//	obs, err := telemetry.NewObserver(p.Meter())
package telemetry
