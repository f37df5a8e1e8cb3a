package fleet

import "errors"

var (
	// ErrVehicleNotFound is returned when a tracked vehicle id is absent
	// from the current vehicle snapshot.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrRouteNotFound is returned when a route id is absent from the
	// current route snapshot, or a vehicle has no resolvable route.
	ErrRouteNotFound = errors.New("route not found")

	// ErrNotLoaded is returned by boundary reads before the first
	// successful fetch of the relevant kind.
	ErrNotLoaded = errors.New("snapshot not loaded yet")
)
