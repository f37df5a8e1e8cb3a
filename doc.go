// Package nagaratrack is the fleet telemetry and analytics core behind
// the NagaraTrack dashboard. It polls an external data source for
// vehicle, route, stop, and health snapshots, derives operational
// metrics from them, tracks bounded health history for charting, and
// deduplicates route-optimization requests.
//
// The Core type is the composition root: it owns the polling scheduler,
// the snapshot store, the alert tracker, and the optimization cache,
// and exposes the read surface the presentation layer renders.
package nagaratrack
