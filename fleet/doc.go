// Package fleet defines the domain model shared by every component of the
// telemetry core: the snapshot types fetched from the data source, the
// values derived from them, and the small amount of geodesy the predictors
// need.
//
// Snapshot types (VehicleSnapshot, RouteSnapshot, StopSnapshot,
// HealthSnapshot) are plain data. A fetch cycle replaces a kind's whole
// collection; nothing merges snapshots across cycles. Derived types
// (RouteEfficiency, TrackingPrediction, MapStats) are recomputed from the
// current snapshots and carry no state of their own.
package fleet
