package source

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

// Simulator is an in-process Client for development and tests. It seeds
// a small Mumbai network and advances vehicles along their route
// coordinates between calls, so repeated polls see plausible motion
// without any backing service.
type Simulator struct {
	mu       sync.Mutex
	rng      *rand.Rand
	stops    []fleet.StopSnapshot
	routes   []fleet.RouteSnapshot
	vehicles []fleet.VehicleSnapshot

	startedAt   time.Time
	lastAdvance time.Time
	requests    int
	dbQueries   int
}

func NewSimulator() *Simulator {
	return NewSimulatorWithSeed(time.Now().UnixNano())
}

// NewSimulatorWithSeed builds a simulator with a deterministic random
// stream, for reproducible tests.
func NewSimulatorWithSeed(seed int64) *Simulator {
	s := &Simulator{
		rng:         rand.New(rand.NewSource(seed)),
		startedAt:   time.Now(),
		lastAdvance: time.Now(),
	}
	s.seed()
	return s
}

func (s *Simulator) seed() {
	s.stops = seedStops()
	for i := range s.stops {
		s.stops[i].ID = uuid.NewString()
	}

	numbers := seedVehicleNumbers()
	for i, sr := range seedRoutes() {
		route := fleet.RouteSnapshot{
			ID:               uuid.NewString(),
			Name:             sr.name,
			Description:      sr.description,
			Color:            sr.color,
			Coordinates:      sr.coordinates,
			StopIDs:          sr.stopIDs,
			DistanceKM:       sr.distanceKM,
			EstimatedMinutes: sr.estimatedM,
		}
		s.routes = append(s.routes, route)

		for j := 0; j < 2; j++ {
			s.vehicles = append(s.vehicles, fleet.VehicleSnapshot{
				ID:            uuid.NewString(),
				RouteID:       route.ID,
				VehicleNumber: fmt.Sprintf("%s%02d", numbers[i], j+1),
				Position:      route.Coordinates[j%len(route.Coordinates)],
				Bearing:       s.rng.Float64() * 360,
				SpeedKMH:      15 + s.rng.Float64()*30,
				Occupancy:     5 + s.rng.Intn(46),
				DelayMinutes:  s.rng.Intn(11) - 2, // -2..8
				Status:        fleet.VehicleActive,
				NextStopID:    sr.stopIDs[0],
				Timestamp:     time.Now(),
			})
		}
	}
}

func (s *Simulator) ListStops(ctx context.Context) ([]fleet.StopSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.dbQueries++
	return append([]fleet.StopSnapshot(nil), s.stops...), nil
}

func (s *Simulator) ListRoutes(ctx context.Context) ([]fleet.RouteSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.dbQueries++
	return append([]fleet.RouteSnapshot(nil), s.routes...), nil
}

// ListVehicles advances the fleet by the wall time elapsed since the
// previous call, then returns a copy of the moved vehicles.
func (s *Simulator) ListVehicles(ctx context.Context) ([]fleet.VehicleSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.dbQueries++

	now := time.Now()
	elapsed := now.Sub(s.lastAdvance).Seconds()
	s.lastAdvance = now
	if elapsed > 0 {
		s.advance(elapsed, now)
	}
	return append([]fleet.VehicleSnapshot(nil), s.vehicles...), nil
}

// advance moves each active vehicle toward the next coordinate of its
// route at its current speed, looping back to the start at route end,
// and drifts speed and occupancy the way the backing feed would.
func (s *Simulator) advance(elapsedSec float64, now time.Time) {
	routesByID := map[string]fleet.RouteSnapshot{}
	for _, r := range s.routes {
		routesByID[r.ID] = r
	}

	for i := range s.vehicles {
		v := &s.vehicles[i]
		if !v.Active() {
			continue
		}
		route, ok := routesByID[v.RouteID]
		if !ok || len(route.Coordinates) == 0 {
			continue
		}

		target := nextRoutePoint(v.Position, route.Coordinates)
		stepKM := v.SpeedKMH * elapsedSec / 3600
		distKM := fleet.HaversineKM(v.Position, target)

		prev := v.Position
		if distKM <= stepKM || distKM == 0 {
			v.Position = target
		} else {
			bearing := fleet.BearingDegrees(v.Position, target)
			v.Position = fleet.Advance(v.Position, bearing, stepKM)
		}
		if v.Position != prev {
			v.Bearing = fleet.BearingDegrees(prev, v.Position)
		}

		// Drift within 80-120% of the current speed, occupancy by a
		// few riders either way.
		v.SpeedKMH = v.SpeedKMH * (0.8 + s.rng.Float64()*0.4)
		v.Occupancy = max(0, v.Occupancy+s.rng.Intn(6)-2)
		v.Timestamp = now
	}
}

// nextRoutePoint picks the coordinate after the one closest to pos,
// wrapping to the start at the end of the sequence.
func nextRoutePoint(pos fleet.Position, coords []fleet.Position) fleet.Position {
	closest := 0
	minDist := math.MaxFloat64
	for i, c := range coords {
		if d := fleet.HaversineKM(pos, c); d < minDist {
			minDist = d
			closest = i
		}
	}
	if closest < len(coords)-1 {
		return coords[closest+1]
	}
	return coords[0]
}

func (s *Simulator) GetHealth(ctx context.Context) (fleet.HealthSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.dbQueries++

	active := 0
	var speedSum float64
	for _, v := range s.vehicles {
		if v.Active() {
			active++
			speedSum += v.SpeedKMH
		}
	}
	avgSpeed := 0.0
	if active > 0 {
		avgSpeed = speedSum / float64(active)
	}

	uptime := time.Since(s.startedAt).Truncate(time.Second)
	return fleet.HealthSnapshot{
		Status:            fleet.HealthHealthy,
		DatabaseConnected: true,
		APIResponseTimeMS: 10 + s.rng.Float64()*40,
		ActiveVehicles:    active,
		TotalRoutes:       len(s.routes),
		TotalStops:        len(s.stops),
		Uptime:            uptime.String(),
		LastUpdate:        time.Now(),
		Metrics: fleet.HealthMetrics{
			RequestsPerMinute:  float64(s.requests),
			DBQueriesPerMinute: float64(s.dbQueries),
			AvgVehicleSpeed:    avgSpeed,
			SystemLoad:         0.2 + s.rng.Float64()*0.6,
			MemoryUsage:        0.4 + s.rng.Float64()*0.3,
			CacheHitRate:       0.85 + s.rng.Float64()*0.1,
			NetworkLatencyMS:   10 + s.rng.Float64()*40,
		},
	}, nil
}

// OptimizeRoute fabricates a traffic-aware variant of the route: interior
// coordinates jittered slightly, 5-15% of the nominal time saved, and a
// traffic score in [0.6, 1.0).
func (s *Simulator) OptimizeRoute(ctx context.Context, routeID string) (fleet.OptimizationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.dbQueries++

	var route *fleet.RouteSnapshot
	for i := range s.routes {
		if s.routes[i].ID == routeID {
			route = &s.routes[i]
			break
		}
	}
	if route == nil {
		return fleet.OptimizationResult{}, fmt.Errorf("optimize %q: %w", routeID, fleet.ErrRouteNotFound)
	}

	optimized := append([]fleet.Position(nil), route.Coordinates...)
	for i := 1; i < len(optimized)-1; i++ {
		optimized[i].Lat += s.rng.Float64()*0.002 - 0.001
		optimized[i].Lon += s.rng.Float64()*0.002 - 0.001
	}

	optimizedMinutes := int(float64(route.EstimatedMinutes) * (0.85 + s.rng.Float64()*0.10))
	return fleet.OptimizationResult{
		RouteID:              routeID,
		OriginalCoordinates:  route.Coordinates,
		OptimizedCoordinates: optimized,
		TimeSavedMinutes:     route.EstimatedMinutes - optimizedMinutes,
		TrafficScore:         0.6 + s.rng.Float64()*0.4,
	}, nil
}
