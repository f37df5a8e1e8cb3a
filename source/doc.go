// Package source defines the boundary to the external fleet data source
// and ships three implementations: an instrumented HTTP client for the
// real API, an in-process simulator with seeded Mumbai data, and a
// GTFS-RT overlay that replaces vehicle positions with a protobuf feed.
package source
