package derive

import (
	"fmt"
	"math"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

// Default prediction shape: five dead-reckoned positions two seconds
// apart, matching the tracking view's refresh cadence.
const (
	DefaultPredictionSteps = 5
	DefaultStepSeconds     = 2
)

// Predict builds a TrackingPrediction for the vehicle with the given id
// from the current snapshot sets.
//
// The future positions are extrapolated along the vehicle's current
// bearing at its current speed, one per step. The ETA is the haversine
// distance to the vehicle's recorded next stop at current speed, with
// the speed floored at 1 km/h so a stationary vehicle yields a large ETA
// rather than a division blowup. Route progress is the vehicle's
// projected distance along the route's coordinate sequence over the
// route's nominal distance, clamped to [0,1].
//
// An unknown vehicle id, or a vehicle whose assigned route is missing
// from the route snapshot, returns a typed not-found error.
func Predict(
	vehicles []fleet.VehicleSnapshot,
	routes []fleet.RouteSnapshot,
	stops []fleet.StopSnapshot,
	vehicleID string,
	steps int,
	stepSeconds float64,
) (fleet.TrackingPrediction, error) {
	var vehicle *fleet.VehicleSnapshot
	for i := range vehicles {
		if vehicles[i].ID == vehicleID {
			vehicle = &vehicles[i]
			break
		}
	}
	if vehicle == nil {
		return fleet.TrackingPrediction{}, fmt.Errorf("predict %q: %w", vehicleID, fleet.ErrVehicleNotFound)
	}

	var route *fleet.RouteSnapshot
	for i := range routes {
		if routes[i].ID == vehicle.RouteID {
			route = &routes[i]
			break
		}
	}
	if route == nil {
		return fleet.TrackingPrediction{}, fmt.Errorf("predict %q: route %q: %w", vehicleID, vehicle.RouteID, fleet.ErrRouteNotFound)
	}

	if steps <= 0 {
		steps = DefaultPredictionSteps
	}
	if stepSeconds <= 0 {
		stepSeconds = DefaultStepSeconds
	}

	pred := fleet.TrackingPrediction{
		VehicleID:          vehicle.ID,
		CurrentPosition:    vehicle.Position,
		SpeedKMH:           vehicle.SpeedKMH,
		Bearing:            vehicle.Bearing,
		PredictedPositions: make([]fleet.Position, 0, steps),
	}

	// Dead reckoning along the current heading.
	stepKM := vehicle.SpeedKMH * stepSeconds / 3600
	pos := vehicle.Position
	for i := 0; i < steps; i++ {
		pos = fleet.Advance(pos, vehicle.Bearing, stepKM)
		pred.PredictedPositions = append(pred.PredictedPositions, pos)
	}

	pred.ETAMinutes = etaMinutes(*vehicle, stops)
	pred.RouteProgress = routeProgress(vehicle.Position, *route)
	return pred, nil
}

func etaMinutes(v fleet.VehicleSnapshot, stops []fleet.StopSnapshot) float64 {
	for _, s := range stops {
		if s.StopID == v.NextStopID || s.ID == v.NextStopID {
			distKM := fleet.HaversineKM(v.Position, s.Position)
			return round2(distKM / math.Max(v.SpeedKMH, 1) * 60)
		}
	}
	return 0
}

func routeProgress(pos fleet.Position, route fleet.RouteSnapshot) float64 {
	// Denominator is the coordinate path's own length so numerator and
	// denominator share a geometry; nominal route distance is the
	// fallback for degenerate shapes.
	total := fleet.PathLengthKM(route.Coordinates)
	if total <= 0 {
		total = route.DistanceKM
	}
	if total <= 0 {
		return 0
	}
	progress := fleet.ProjectOntoPath(pos, route.Coordinates) / total
	return math.Max(0, math.Min(1, progress))
}
