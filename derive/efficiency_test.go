package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

func route(id string, distanceKM float64, estMin int) fleet.RouteSnapshot {
	return fleet.RouteSnapshot{
		ID:               id,
		Name:             "Route " + id,
		DistanceKM:       distanceKM,
		EstimatedMinutes: estMin,
		Coordinates: []fleet.Position{
			{Lat: 18.9394, Lon: 72.8347},
			{Lat: 19.1197, Lon: 72.8397},
		},
	}
}

func activeVehicle(id, routeID string, speed float64, delay, occupancy int) fleet.VehicleSnapshot {
	return fleet.VehicleSnapshot{
		ID:           id,
		RouteID:      routeID,
		SpeedKMH:     speed,
		DelayMinutes: delay,
		Occupancy:    occupancy,
		Status:       fleet.VehicleActive,
	}
}

func TestEfficiencyWorkedExample(t *testing.T) {
	routes := []fleet.RouteSnapshot{route("r1", 10, 20)}
	vehicles := []fleet.VehicleSnapshot{
		activeVehicle("v1", "r1", 30, 0, 10),
		activeVehicle("v2", "r1", 50, 6, 20),
	}

	list := Efficiencies(routes, vehicles)
	require.Len(t, list, 1)
	e := list[0]

	assert.Equal(t, 2, e.ActiveVehicles)
	assert.Equal(t, 2, e.TotalVehicles)
	assert.InDelta(t, 40.0, e.AvgSpeed, 1e-9)
	assert.InDelta(t, 15.0, e.AvgOccupancy, 1e-9)
	assert.InDelta(t, 50.0, e.OnTimePct, 1e-9) // one of two within +/-2 min
	assert.Equal(t, 6, e.TotalDelayMin)
	assert.InDelta(t, 62.857142857, e.Efficiency, 1e-6) // 30 + 20 + (15/35)*30
	assert.Equal(t, fleet.EfficiencyGood, e.Status)
	assert.Equal(t, 750, e.EstimatedRevenue) // round(15 * 2 * 25)
	assert.InDelta(t, 0.25, e.FuelEfficiency, 1e-9)
}

func TestEfficiencyEmptyRouteVacuousValues(t *testing.T) {
	routes := []fleet.RouteSnapshot{route("r1", 12, 30)}

	list := Efficiencies(routes, nil)
	require.Len(t, list, 1)
	e := list[0]

	assert.Zero(t, e.ActiveVehicles)
	assert.Zero(t, e.AvgSpeed)
	assert.Zero(t, e.AvgOccupancy)
	assert.InDelta(t, 100.0, e.OnTimePct, 1e-9)
	// Score: 0 speed + full on-time weight + 0 occupancy.
	assert.InDelta(t, 40.0, e.Efficiency, 1e-9)
	assert.Equal(t, fleet.EfficiencyPoor, e.Status)
	assert.Zero(t, e.EstimatedRevenue)
	// Divide-by-zero guard: distance over max(avgSpeed, 1).
	assert.InDelta(t, 12.0, e.FuelEfficiency, 1e-9)
}

func TestEfficiencyIgnoresInactiveVehicles(t *testing.T) {
	routes := []fleet.RouteSnapshot{route("r1", 10, 20)}
	vehicles := []fleet.VehicleSnapshot{
		activeVehicle("v1", "r1", 40, 0, 20),
		{ID: "v2", RouteID: "r1", SpeedKMH: 90, Occupancy: 50, Status: fleet.VehicleOffline},
	}

	list := Efficiencies(routes, vehicles)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ActiveVehicles)
	assert.Equal(t, 2, list[0].TotalVehicles)
	assert.InDelta(t, 40.0, list[0].AvgSpeed, 1e-9)
}

func TestEfficiencyBounds(t *testing.T) {
	routes := []fleet.RouteSnapshot{route("r1", 10, 20)}

	cases := []struct {
		name     string
		vehicles []fleet.VehicleSnapshot
	}{
		{"saturated", []fleet.VehicleSnapshot{activeVehicle("v", "r1", 200, 0, 500)}},
		{"worst", []fleet.VehicleSnapshot{activeVehicle("v", "r1", 0, 60, 0)}},
		{"mixed", []fleet.VehicleSnapshot{
			activeVehicle("a", "r1", 25, -1, 12),
			activeVehicle("b", "r1", 55, 9, 44),
			activeVehicle("c", "r1", 0, 2, 0),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list := Efficiencies(routes, tc.vehicles)
			require.Len(t, list, 1)
			assert.GreaterOrEqual(t, list[0].Efficiency, 0.0)
			assert.LessOrEqual(t, list[0].Efficiency, 100.0)
		})
	}
}

func TestEfficiencyStatusBuckets(t *testing.T) {
	assert.Equal(t, fleet.EfficiencyExcellent, efficiencyStatus(80.1))
	assert.Equal(t, fleet.EfficiencyGood, efficiencyStatus(80))
	assert.Equal(t, fleet.EfficiencyGood, efficiencyStatus(60.1))
	assert.Equal(t, fleet.EfficiencyFair, efficiencyStatus(60))
	assert.Equal(t, fleet.EfficiencyFair, efficiencyStatus(40.1))
	assert.Equal(t, fleet.EfficiencyPoor, efficiencyStatus(40))
	assert.Equal(t, fleet.EfficiencyPoor, efficiencyStatus(0))
}

func TestSortStableDescending(t *testing.T) {
	list := []fleet.RouteEfficiency{
		{RouteID: "a", Efficiency: 50, EstimatedRevenue: 100, OnTimePct: 90, AvgOccupancy: 10},
		{RouteID: "b", Efficiency: 70, EstimatedRevenue: 100, OnTimePct: 50, AvgOccupancy: 30},
		{RouteID: "c", Efficiency: 70, EstimatedRevenue: 300, OnTimePct: 70, AvgOccupancy: 20},
	}

	Sort(list, SortByEfficiency)
	// b and c tie on efficiency; stable sort keeps b first.
	assert.Equal(t, []string{"b", "c", "a"}, ids(list))

	Sort(list, SortByRevenue)
	assert.Equal(t, "c", list[0].RouteID)
	// a and b tie on revenue and keep their relative order from the
	// previous arrangement.
	assert.Equal(t, []string{"c", "b", "a"}, ids(list))

	Sort(list, SortByOnTime)
	assert.Equal(t, []string{"a", "c", "b"}, ids(list))

	Sort(list, SortByOccupancy)
	assert.Equal(t, []string{"b", "c", "a"}, ids(list))

	Sort(list, SortKey("bogus"))
	assert.Equal(t, "b", list[0].RouteID)
}

func ids(list []fleet.RouteEfficiency) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.RouteID
	}
	return out
}

func TestStats(t *testing.T) {
	routes := []fleet.RouteSnapshot{route("r1", 10, 20), route("r2", 5, 10)}
	stops := []fleet.StopSnapshot{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}
	vehicles := []fleet.VehicleSnapshot{
		activeVehicle("v1", "r1", 30, 0, 10),
		activeVehicle("v2", "r2", 50, 0, 20),
		{ID: "v3", RouteID: "r1", SpeedKMH: 70, Occupancy: 5, Status: fleet.VehicleMaintenance},
	}

	st := Stats(routes, stops, vehicles)
	assert.Equal(t, 3, st.TotalVehicles)
	assert.Equal(t, 2, st.ActiveVehicles)
	assert.Equal(t, 2, st.TotalRoutes)
	assert.Equal(t, 3, st.TotalStops)
	assert.Equal(t, 35, st.TotalPassengers)
	assert.InDelta(t, 40.0, st.AvgSpeed, 1e-9)
	assert.False(t, st.LastUpdate.IsZero())
}
