package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

func TestSimulatorSeedData(t *testing.T) {
	s := NewSimulatorWithSeed(1)
	ctx := context.Background()

	stops, err := s.ListStops(ctx)
	require.NoError(t, err)
	assert.Len(t, stops, 8)
	for _, st := range stops {
		assert.NotEmpty(t, st.ID)
		assert.NotEmpty(t, st.StopID)
		assert.NotZero(t, st.Position.Lat)
	}

	routes, err := s.ListRoutes(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 3)
	for _, r := range routes {
		assert.GreaterOrEqual(t, len(r.Coordinates), 2)
		assert.Greater(t, r.DistanceKM, 0.0)
		assert.Greater(t, r.EstimatedMinutes, 0)
	}

	vehicles, err := s.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 6)
	routeIDs := map[string]bool{}
	for _, r := range routes {
		routeIDs[r.ID] = true
	}
	for _, v := range vehicles {
		assert.True(t, routeIDs[v.RouteID], "vehicle must reference a seeded route")
		assert.True(t, v.Active())
		assert.Greater(t, v.SpeedKMH, 0.0)
		assert.GreaterOrEqual(t, v.Occupancy, 0)
	}
}

func TestSimulatorMovesVehicles(t *testing.T) {
	s := NewSimulatorWithSeed(2)
	ctx := context.Background()

	before, err := s.ListVehicles(ctx)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	after, err := s.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))

	moved := 0
	for i := range after {
		if after[i].Position != before[i].Position {
			moved++
		}
	}
	assert.Greater(t, moved, 0, "elapsed time should move at least one vehicle")
}

func TestSimulatorHealth(t *testing.T) {
	s := NewSimulatorWithSeed(3)
	ctx := context.Background()

	_, err := s.ListVehicles(ctx)
	require.NoError(t, err)

	h, err := s.GetHealth(ctx)
	require.NoError(t, err)

	assert.Equal(t, fleet.HealthHealthy, h.Status)
	assert.True(t, h.DatabaseConnected)
	assert.Equal(t, 6, h.ActiveVehicles)
	assert.Equal(t, 3, h.TotalRoutes)
	assert.Equal(t, 8, h.TotalStops)
	assert.Greater(t, h.Metrics.RequestsPerMinute, 0.0)
	assert.GreaterOrEqual(t, h.Metrics.SystemLoad, 0.2)
	assert.LessOrEqual(t, h.Metrics.SystemLoad, 0.8)
	assert.GreaterOrEqual(t, h.Metrics.CacheHitRate, 0.85)
	assert.NotEmpty(t, h.Uptime)
}

func TestSimulatorOptimizeRoute(t *testing.T) {
	s := NewSimulatorWithSeed(4)
	ctx := context.Background()

	routes, err := s.ListRoutes(ctx)
	require.NoError(t, err)
	target := routes[0]

	res, err := s.OptimizeRoute(ctx, target.ID)
	require.NoError(t, err)

	assert.Equal(t, target.ID, res.RouteID)
	assert.Len(t, res.OptimizedCoordinates, len(target.Coordinates))
	assert.GreaterOrEqual(t, res.TimeSavedMinutes, 0)
	assert.LessOrEqual(t, res.TimeSavedMinutes, target.EstimatedMinutes)
	assert.GreaterOrEqual(t, res.TrafficScore, 0.6)
	assert.LessOrEqual(t, res.TrafficScore, 1.0)

	// Endpoints are never jittered.
	assert.Equal(t, target.Coordinates[0], res.OptimizedCoordinates[0])
	last := len(target.Coordinates) - 1
	assert.Equal(t, target.Coordinates[last], res.OptimizedCoordinates[last])
}

func TestSimulatorOptimizeUnknownRoute(t *testing.T) {
	s := NewSimulatorWithSeed(5)

	_, err := s.OptimizeRoute(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fleet.ErrRouteNotFound))
}
