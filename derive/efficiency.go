package derive

import (
	"math"
	"sort"
	"time"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

// Scoring weights and normalization constants for the composite
// efficiency score. Speed is normalized against a 40 km/h target,
// occupancy against 35 passengers; on-time means within 2 minutes of
// schedule either way. Revenue uses a flat $25 per passenger estimate.
const (
	speedTarget      = 40.0
	occupancyTarget  = 35.0
	onTimeToleranceM = 2
	revenuePerRider  = 25.0

	speedWeight     = 30.0
	onTimeWeight    = 40.0
	occupancyWeight = 30.0
)

// Efficiencies builds one RouteEfficiency per route from the current
// snapshot sets. Only active vehicles count toward a route's metrics; a
// route with no active vehicles gets vacuous values (zero speed, 100%
// on time) rather than an error path.
func Efficiencies(routes []fleet.RouteSnapshot, vehicles []fleet.VehicleSnapshot) []fleet.RouteEfficiency {
	byRoute := map[string][]fleet.VehicleSnapshot{}
	totals := map[string]int{}
	for _, v := range vehicles {
		totals[v.RouteID]++
		if v.Active() {
			byRoute[v.RouteID] = append(byRoute[v.RouteID], v)
		}
	}

	out := make([]fleet.RouteEfficiency, 0, len(routes))
	for _, r := range routes {
		active := byRoute[r.ID]

		var speedSum, occSum float64
		onTime := 0
		totalDelay := 0
		for _, v := range active {
			speedSum += v.SpeedKMH
			occSum += float64(v.Occupancy)
			if v.DelayMinutes >= -onTimeToleranceM && v.DelayMinutes <= onTimeToleranceM {
				onTime++
			}
			totalDelay += v.DelayMinutes
		}

		avgSpeed := 0.0
		avgOccupancy := 0.0
		onTimePct := 100.0 // vacuously on time with no active vehicles
		if n := len(active); n > 0 {
			avgSpeed = speedSum / float64(n)
			avgOccupancy = occSum / float64(n)
			onTimePct = 100 * float64(onTime) / float64(n)
		}

		speedScore := math.Min(avgSpeed/speedTarget, 1) * speedWeight
		onTimeScore := (onTimePct / 100) * onTimeWeight
		occupancyScore := math.Min(avgOccupancy/occupancyTarget, 1) * occupancyWeight
		efficiency := speedScore + onTimeScore + occupancyScore

		out = append(out, fleet.RouteEfficiency{
			RouteID:          r.ID,
			RouteName:        r.Name,
			ActiveVehicles:   len(active),
			TotalVehicles:    totals[r.ID],
			AvgSpeed:         avgSpeed,
			AvgOccupancy:     avgOccupancy,
			OnTimePct:        onTimePct,
			TotalDelayMin:    totalDelay,
			Efficiency:       efficiency,
			Status:           efficiencyStatus(efficiency),
			EstimatedRevenue: int(math.Round(avgOccupancy * float64(len(active)) * revenuePerRider)),
			FuelEfficiency:   round2(r.DistanceKM / math.Max(avgSpeed, 1)),
		})
	}
	return out
}

func efficiencyStatus(score float64) fleet.EfficiencyStatus {
	switch {
	case score > 80:
		return fleet.EfficiencyExcellent
	case score > 60:
		return fleet.EfficiencyGood
	case score > 40:
		return fleet.EfficiencyFair
	default:
		return fleet.EfficiencyPoor
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// SortKey selects the column Sort orders by.
type SortKey string

const (
	SortByEfficiency SortKey = "efficiency"
	SortByRevenue    SortKey = "revenue"
	SortByOnTime     SortKey = "ontime"
	SortByOccupancy  SortKey = "occupancy"
)

// Sort orders efficiencies descending by the given key, in place. The
// sort is stable so equal rows keep their route order. Unknown keys fall
// back to efficiency.
func Sort(list []fleet.RouteEfficiency, key SortKey) {
	less := func(a, b fleet.RouteEfficiency) bool { return a.Efficiency > b.Efficiency }
	switch key {
	case SortByRevenue:
		less = func(a, b fleet.RouteEfficiency) bool { return a.EstimatedRevenue > b.EstimatedRevenue }
	case SortByOnTime:
		less = func(a, b fleet.RouteEfficiency) bool { return a.OnTimePct > b.OnTimePct }
	case SortByOccupancy:
		less = func(a, b fleet.RouteEfficiency) bool { return a.AvgOccupancy > b.AvgOccupancy }
	}
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
}

// Stats aggregates the current snapshots for the map boundary.
func Stats(routes []fleet.RouteSnapshot, stops []fleet.StopSnapshot, vehicles []fleet.VehicleSnapshot) fleet.MapStats {
	st := fleet.MapStats{
		TotalVehicles: len(vehicles),
		TotalRoutes:   len(routes),
		TotalStops:    len(stops),
		LastUpdate:    time.Now(),
	}
	var speedSum float64
	for _, v := range vehicles {
		st.TotalPassengers += v.Occupancy
		if v.Active() {
			st.ActiveVehicles++
			speedSum += v.SpeedKMH
		}
	}
	if st.ActiveVehicles > 0 {
		st.AvgSpeed = speedSum / float64(st.ActiveVehicles)
	}
	return st
}
