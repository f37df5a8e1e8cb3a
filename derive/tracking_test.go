package derive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

func trackingFixture() ([]fleet.VehicleSnapshot, []fleet.RouteSnapshot, []fleet.StopSnapshot) {
	routes := []fleet.RouteSnapshot{{
		ID:         "r1",
		Name:       "Express Line",
		DistanceKM: 20,
		Coordinates: []fleet.Position{
			{Lat: 18.9394, Lon: 72.8347},
			{Lat: 19.0300, Lon: 72.8370},
			{Lat: 19.1197, Lon: 72.8397},
		},
	}}
	stops := []fleet.StopSnapshot{{
		ID:       "stop-uuid",
		StopID:   "AND004",
		Name:     "Andheri Station",
		Position: fleet.Position{Lat: 19.1197, Lon: 72.8397},
	}}
	vehicles := []fleet.VehicleSnapshot{{
		ID:         "v1",
		RouteID:    "r1",
		Position:   fleet.Position{Lat: 19.0300, Lon: 72.8370}, // middle vertex
		Bearing:    10,
		SpeedKMH:   36,
		NextStopID: "AND004",
		Status:     fleet.VehicleActive,
	}}
	return vehicles, routes, stops
}

func TestPredictHappyPath(t *testing.T) {
	vehicles, routes, stops := trackingFixture()

	pred, err := Predict(vehicles, routes, stops, "v1", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, "v1", pred.VehicleID)
	assert.Equal(t, vehicles[0].Position, pred.CurrentPosition)
	require.Len(t, pred.PredictedPositions, DefaultPredictionSteps)

	// 36 km/h over 2 s steps is 20 m per step; each predicted point moves
	// roughly that far from the previous one along the heading.
	prev := pred.CurrentPosition
	for _, p := range pred.PredictedPositions {
		stepKM := fleet.HaversineKM(prev, p)
		assert.InDelta(t, 0.020, stepKM, 0.002)
		prev = p
	}

	// The vehicle sits at the middle vertex, about halfway along the
	// shape. Progress comes from projection, clamped to [0,1].
	assert.InDelta(t, 0.5, pred.RouteProgress, 0.05)

	// ETA: ~10 km to Andheri at 36 km/h is close to 17 minutes.
	assert.InDelta(t, 10.0/36.0*60.0, pred.ETAMinutes, 1.0)
}

func TestPredictUnknownVehicle(t *testing.T) {
	vehicles, routes, stops := trackingFixture()

	_, err := Predict(vehicles, routes, stops, "ghost", 5, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fleet.ErrVehicleNotFound))
}

func TestPredictUnknownRoute(t *testing.T) {
	vehicles, _, stops := trackingFixture()

	_, err := Predict(vehicles, nil, stops, "v1", 5, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fleet.ErrRouteNotFound))
}

func TestPredictStationaryVehicleETAGuard(t *testing.T) {
	vehicles, routes, stops := trackingFixture()
	vehicles[0].SpeedKMH = 0

	pred, err := Predict(vehicles, routes, stops, "v1", 5, 2)
	require.NoError(t, err)

	// Speed floored at 1 km/h: finite but large ETA, no blowup.
	assert.Greater(t, pred.ETAMinutes, 60.0)

	// Zero speed means the dead-reckoned points stay put.
	for _, p := range pred.PredictedPositions {
		assert.InDelta(t, vehicles[0].Position.Lat, p.Lat, 1e-9)
		assert.InDelta(t, vehicles[0].Position.Lon, p.Lon, 1e-9)
	}
}

func TestPredictProgressClamped(t *testing.T) {
	vehicles, routes, stops := trackingFixture()

	// Way past the end of the route.
	vehicles[0].Position = fleet.Position{Lat: 19.5, Lon: 72.85}
	pred, err := Predict(vehicles, routes, stops, "v1", 5, 2)
	require.NoError(t, err)
	assert.LessOrEqual(t, pred.RouteProgress, 1.0)
	assert.InDelta(t, 1.0, pred.RouteProgress, 1e-9)

	// Before the start.
	vehicles[0].Position = fleet.Position{Lat: 18.5, Lon: 72.80}
	pred, err = Predict(vehicles, routes, stops, "v1", 5, 2)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pred.RouteProgress, 0.0)
	assert.InDelta(t, 0.0, pred.RouteProgress, 1e-9)
}

func TestPredictUnknownNextStopZeroETA(t *testing.T) {
	vehicles, routes, stops := trackingFixture()
	vehicles[0].NextStopID = "nowhere"

	pred, err := Predict(vehicles, routes, stops, "v1", 5, 2)
	require.NoError(t, err)
	assert.Zero(t, pred.ETAMinutes)
}
