package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

func TestNotLoadedSentinel(t *testing.T) {
	s := New()

	_, ok := s.Vehicles()
	assert.False(t, ok)
	_, ok = s.Routes()
	assert.False(t, ok)
	_, ok = s.Stops()
	assert.False(t, ok)
	_, ok = s.Health()
	assert.False(t, ok)
	assert.Zero(t, s.Seq(fleet.KindVehicles))
}

func TestSetAndGet(t *testing.T) {
	s := New()
	vehicles := []fleet.VehicleSnapshot{{ID: "v1"}, {ID: "v2"}}

	require.True(t, s.Set(fleet.KindVehicles, 1, vehicles))

	got, ok := s.Vehicles()
	require.True(t, ok)
	assert.Len(t, got, 2)
	assert.Equal(t, uint64(1), s.Seq(fleet.KindVehicles))

	_, ok = s.FetchedAt(fleet.KindVehicles)
	assert.True(t, ok)
}

func TestStaleCompletionDiscarded(t *testing.T) {
	s := New()

	require.True(t, s.Set(fleet.KindVehicles, 2, []fleet.VehicleSnapshot{{ID: "fresh"}}))

	// A cycle issued earlier but completing later must not win.
	assert.False(t, s.Set(fleet.KindVehicles, 1, []fleet.VehicleSnapshot{{ID: "stale"}}))
	assert.False(t, s.Set(fleet.KindVehicles, 2, []fleet.VehicleSnapshot{{ID: "replay"}}))

	got, ok := s.Vehicles()
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].ID)
	assert.Equal(t, uint64(2), s.Seq(fleet.KindVehicles))
}

func TestKindsIsolated(t *testing.T) {
	s := New()

	require.True(t, s.Set(fleet.KindRoutes, 1, []fleet.RouteSnapshot{{ID: "r1"}}))
	require.True(t, s.Set(fleet.KindHealth, 1, fleet.HealthSnapshot{Status: fleet.HealthHealthy}))

	// Writing one kind leaves the others untouched.
	require.True(t, s.Set(fleet.KindRoutes, 2, []fleet.RouteSnapshot{{ID: "r2"}}))

	h, ok := s.Health()
	require.True(t, ok)
	assert.Equal(t, fleet.HealthHealthy, h.Status)

	_, ok = s.Vehicles()
	assert.False(t, ok)
}
