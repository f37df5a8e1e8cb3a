// Package telemetry holds the OpenTelemetry metric instruments for the
// polling and optimization paths. Instruments are created against the
// global meter provider; wiring an exporter is the host application's
// concern, and without one the instruments are no-ops.
package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	// FetchCyclesTotal counts completed fetch cycles by kind and outcome.
	FetchCyclesTotal metric.Int64Counter

	// FetchCycleDuration measures fetch cycle duration in seconds.
	FetchCycleDuration metric.Float64Histogram

	// FetchErrorsTotal counts failed fetch cycles by kind.
	FetchErrorsTotal metric.Int64Counter

	// OptimizeCallsTotal counts upstream optimizer invocations.
	OptimizeCallsTotal metric.Int64Counter

	// OptimizeInFlight tracks concurrently running optimizer calls.
	OptimizeInFlight metric.Int64UpDownCounter
)

// Init creates the instruments. Safe to call once at startup; errors
// from instrument creation are returned so the caller can decide
// whether to continue without metrics.
func Init() error {
	meter := otel.Meter("nagaratrack")

	var err error
	if FetchCyclesTotal, err = meter.Int64Counter("fleet.fetch.cycles",
		metric.WithDescription("Completed fetch cycles")); err != nil {
		return err
	}
	if FetchCycleDuration, err = meter.Float64Histogram("fleet.fetch.duration",
		metric.WithDescription("Fetch cycle duration"), metric.WithUnit("s")); err != nil {
		return err
	}
	if FetchErrorsTotal, err = meter.Int64Counter("fleet.fetch.errors",
		metric.WithDescription("Failed fetch cycles")); err != nil {
		return err
	}
	if OptimizeCallsTotal, err = meter.Int64Counter("fleet.optimize.calls",
		metric.WithDescription("Upstream route optimizer invocations")); err != nil {
		return err
	}
	if OptimizeInFlight, err = meter.Int64UpDownCounter("fleet.optimize.in_flight",
		metric.WithDescription("Optimizer calls currently in flight")); err != nil {
		return err
	}
	return nil
}
