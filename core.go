package nagaratrack

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Rishi5377/NagaraTrackLite/alerting"
	"github.com/Rishi5377/NagaraTrackLite/config"
	"github.com/Rishi5377/NagaraTrackLite/derive"
	"github.com/Rishi5377/NagaraTrackLite/fleet"
	"github.com/Rishi5377/NagaraTrackLite/optimize"
	"github.com/Rishi5377/NagaraTrackLite/scheduler"
	"github.com/Rishi5377/NagaraTrackLite/source"
	"github.com/Rishi5377/NagaraTrackLite/store"
	"github.com/Rishi5377/NagaraTrackLite/telemetry"
)

// Core wires the telemetry components together and drives the refresh
// cycles. Data flows one way: scheduler fetches into the snapshot
// store, derived metrics and health history are recomputed after each
// relevant cycle, and the boundary reads copies of the results.
type Core struct {
	cfg    config.AppConfig
	logger *slog.Logger
	src    source.Client

	store   *store.Store
	sched   *scheduler.Scheduler
	tracker *alerting.Tracker
	cache   *optimize.Cache

	mu           sync.RWMutex
	efficiencies []fleet.RouteEfficiency
	mapStats     fleet.MapStats
	trackedID    string
	optimizeMode bool
	routeShapes  map[string]string // route id -> coordinate fingerprint
}

func NewCore(cfg config.AppConfig, src source.Client, logger *slog.Logger) *Core {
	if logger == nil {
		logger = slog.Default()
	}
	return &Core{
		cfg:    cfg,
		logger: logger.With("component", "core"),
		src:    src,
		store:  store.New(),
		sched:  scheduler.New(logger.With("component", "scheduler")),
		tracker: alerting.NewTracker(cfg.Alerts.HistorySize, cfg.Alerts.EventLogSize, alerting.Thresholds{
			SystemLoadMax:     cfg.Alerts.SystemLoadMax,
			MemoryUsageMax:    cfg.Alerts.MemoryUsageMax,
			ResponseTimeMaxMS: cfg.Alerts.ResponseTimeMaxMS,
		}),
		cache:       optimize.NewCache(time.Duration(cfg.Optimizer.TTLSeconds) * time.Second),
		routeShapes: map[string]string{},
	}
}

// Start launches the polling jobs at their configured cadences. The
// first cycle for every kind fires immediately.
func (c *Core) Start() {
	p := c.cfg.Polling
	c.sched.Start(fleet.KindVehicles, time.Duration(p.VehiclesMS)*time.Millisecond, c.vehiclesCycle)
	c.sched.Start(fleet.KindRoutes, time.Duration(p.RoutesMS)*time.Millisecond, c.routesCycle)
	c.sched.Start(fleet.KindStops, time.Duration(p.StopsMS)*time.Millisecond, c.stopsCycle)
	c.sched.Start(fleet.KindHealth, time.Duration(p.HealthMS)*time.Millisecond, c.healthCycle)
}

// Stop cancels all polling. In-flight fetches resolve but their results
// are dropped.
func (c *Core) Stop() {
	c.sched.StopAll()
}

// RefreshNow forces an immediate out-of-band refresh for one kind.
func (c *Core) RefreshNow(kind fleet.Kind) {
	c.sched.RefreshNow(kind)
}

func (c *Core) vehiclesCycle(ctx context.Context, seq uint64) error {
	return c.runCycle(ctx, fleet.KindVehicles, seq, func(ctx context.Context) (any, error) {
		v, err := c.src.ListVehicles(ctx)
		return v, err
	}, true)
}

func (c *Core) routesCycle(ctx context.Context, seq uint64) error {
	return c.runCycle(ctx, fleet.KindRoutes, seq, func(ctx context.Context) (any, error) {
		routes, err := c.src.ListRoutes(ctx)
		if err != nil {
			return nil, err
		}
		c.invalidateChangedRoutes(routes)
		return routes, nil
	}, true)
}

func (c *Core) stopsCycle(ctx context.Context, seq uint64) error {
	return c.runCycle(ctx, fleet.KindStops, seq, func(ctx context.Context) (any, error) {
		s, err := c.src.ListStops(ctx)
		return s, err
	}, true)
}

func (c *Core) healthCycle(ctx context.Context, seq uint64) error {
	return c.runCycle(ctx, fleet.KindHealth, seq, func(ctx context.Context) (any, error) {
		h, err := c.src.GetHealth(ctx)
		return h, err
	}, false)
}

// runCycle is the shared shape of one fetch cycle: fetch, drop the
// result if the job was stopped meanwhile, apply to the store (stale
// sequence numbers lose), then recompute whatever depends on the kind.
// Failures keep the last-good snapshot and land in the event log.
func (c *Core) runCycle(ctx context.Context, kind fleet.Kind, seq uint64, fetch func(context.Context) (any, error), recompute bool) error {
	start := time.Now()
	value, err := fetch(ctx)
	elapsed := time.Since(start).Seconds()

	attrs := metric.WithAttributes(attribute.String("kind", string(kind)))
	if telemetry.FetchCycleDuration != nil {
		telemetry.FetchCycleDuration.Record(ctx, elapsed, attrs)
	}

	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if telemetry.FetchErrorsTotal != nil {
			telemetry.FetchErrorsTotal.Add(ctx, 1, attrs)
		}
		c.tracker.RecordEvent(fleet.SeverityWarning, fmt.Sprintf("%s refresh failed: %v", kind, err))
		return fmt.Errorf("fetch %s: %w", kind, err)
	}
	if ctx.Err() != nil {
		// Stopped while in flight; drop the result on arrival.
		return ctx.Err()
	}

	applied := c.store.Set(kind, seq, value)
	if telemetry.FetchCyclesTotal != nil {
		telemetry.FetchCyclesTotal.Add(ctx, 1, attrs)
	}
	if !applied {
		c.logger.Debug("discarded stale fetch completion", "kind", kind, "seq", seq)
		return nil
	}

	if kind == fleet.KindHealth {
		if h, ok := c.store.Health(); ok {
			c.tracker.Observe(h)
		}
	}
	if recompute {
		c.recompute()
	}
	return nil
}

// recompute rebuilds the derived analytics from the current snapshots.
// Pull-based and synchronous: exactly once per applied fetch cycle,
// never as a rendering side effect.
func (c *Core) recompute() {
	vehicles, _ := c.store.Vehicles()
	routes, _ := c.store.Routes()
	stops, _ := c.store.Stops()

	efficiencies := derive.Efficiencies(routes, vehicles)
	stats := derive.Stats(routes, stops, vehicles)

	c.mu.Lock()
	c.efficiencies = efficiencies
	c.mapStats = stats
	mode := c.optimizeMode
	c.mu.Unlock()

	if mode {
		for _, r := range routes {
			go c.warmOptimization(r.ID)
		}
	}
}

// warmOptimization populates the cache for one route in the background.
// The single-flight cache absorbs duplicate warms across cycles.
func (c *Core) warmOptimization(routeID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := c.Optimize(ctx, routeID); err != nil {
		c.logger.Warn("route optimization failed", "route", routeID, "error", err)
	}
}

// invalidateChangedRoutes drops cached optimizations for routes whose
// coordinate sequence changed since the last routes cycle.
func (c *Core) invalidateChangedRoutes(routes []fleet.RouteSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range routes {
		fp := shapeFingerprint(r.Coordinates)
		if prev, ok := c.routeShapes[r.ID]; ok && prev != fp {
			c.cache.Invalidate(r.ID)
			c.logger.Info("route shape changed, optimization invalidated", "route", r.ID)
		}
		c.routeShapes[r.ID] = fp
	}
}

func shapeFingerprint(coords []fleet.Position) string {
	fp := fmt.Sprintf("%d:", len(coords))
	if len(coords) > 0 {
		first, last := coords[0], coords[len(coords)-1]
		fp += fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", first.Lat, first.Lon, last.Lat, last.Lon)
		sumLat, sumLon := 0.0, 0.0
		for _, p := range coords {
			sumLat += p.Lat
			sumLon += p.Lon
		}
		fp += fmt.Sprintf("|%.6f,%.6f", sumLat, sumLon)
	}
	return fp
}

// Vehicles returns the current vehicle snapshots, optionally filtered
// by route id.
func (c *Core) Vehicles(routeID string) ([]fleet.VehicleSnapshot, error) {
	vehicles, ok := c.store.Vehicles()
	if !ok {
		return nil, fleet.ErrNotLoaded
	}
	if routeID == "" {
		return vehicles, nil
	}
	var out []fleet.VehicleSnapshot
	for _, v := range vehicles {
		if v.RouteID == routeID {
			out = append(out, v)
		}
	}
	return out, nil
}

// Routes returns the current route snapshots.
func (c *Core) Routes() ([]fleet.RouteSnapshot, error) {
	routes, ok := c.store.Routes()
	if !ok {
		return nil, fleet.ErrNotLoaded
	}
	return routes, nil
}

// Stops returns the current stop snapshots.
func (c *Core) Stops() ([]fleet.StopSnapshot, error) {
	stops, ok := c.store.Stops()
	if !ok {
		return nil, fleet.ErrNotLoaded
	}
	return stops, nil
}

// Health returns the latest health snapshot with its status replaced by
// the tracker's derived status for the current cycle.
func (c *Core) Health() (fleet.HealthSnapshot, error) {
	h, ok := c.store.Health()
	if !ok {
		return fleet.HealthSnapshot{}, fleet.ErrNotLoaded
	}
	h.Status = c.tracker.Status()
	return h, nil
}

// Efficiencies returns the derived per-route analytics, stably sorted
// descending by the given key.
func (c *Core) Efficiencies(key derive.SortKey) []fleet.RouteEfficiency {
	c.mu.RLock()
	out := make([]fleet.RouteEfficiency, len(c.efficiencies))
	copy(out, c.efficiencies)
	c.mu.RUnlock()
	derive.Sort(out, key)
	return out
}

// MapStats returns the aggregate map statistics.
func (c *Core) MapStats() fleet.MapStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mapStats
}

// Alerts returns the current cycle's threshold violations.
func (c *Core) Alerts() []fleet.Alert { return c.tracker.CurrentAlerts() }

// Events returns the bounded operational event log, newest first.
func (c *Core) Events() []fleet.Alert { return c.tracker.Events() }

// History returns the named chart series, oldest point first.
func (c *Core) History(series string) ([]fleet.HistoryPoint, bool) {
	return c.tracker.History(series)
}

// SetThresholds adjusts the alert limits for subsequent health cycles.
func (c *Core) SetThresholds(th alerting.Thresholds) { c.tracker.SetThresholds(th) }

// Thresholds returns the alert limits currently in force.
func (c *Core) Thresholds() alerting.Thresholds { return c.tracker.GetThresholds() }

// StartTracking selects a vehicle for tracking. The id must exist in
// the current vehicle snapshot.
func (c *Core) StartTracking(vehicleID string) (fleet.TrackingPrediction, error) {
	pred, err := c.Track(vehicleID)
	if err != nil {
		return fleet.TrackingPrediction{}, err
	}
	c.mu.Lock()
	c.trackedID = vehicleID
	c.mu.Unlock()
	return pred, nil
}

// StopTracking cancels vehicle tracking; the prediction is discarded.
func (c *Core) StopTracking() {
	c.mu.Lock()
	c.trackedID = ""
	c.mu.Unlock()
}

// TrackedPrediction recomputes the prediction for the currently tracked
// vehicle, or reports that nothing is tracked.
func (c *Core) TrackedPrediction() (fleet.TrackingPrediction, bool, error) {
	c.mu.RLock()
	id := c.trackedID
	c.mu.RUnlock()
	if id == "" {
		return fleet.TrackingPrediction{}, false, nil
	}
	pred, err := c.Track(id)
	return pred, true, err
}

// Track computes a prediction for one vehicle from the current
// snapshots, without changing the tracked selection.
func (c *Core) Track(vehicleID string) (fleet.TrackingPrediction, error) {
	vehicles, ok := c.store.Vehicles()
	if !ok {
		return fleet.TrackingPrediction{}, fleet.ErrNotLoaded
	}
	routes, _ := c.store.Routes()
	stops, _ := c.store.Stops()
	return derive.Predict(vehicles, routes, stops, vehicleID, derive.DefaultPredictionSteps, derive.DefaultStepSeconds)
}

// SetOptimizeMode enables or disables background optimization warming.
// Enabling triggers a warm pass for the currently known routes.
func (c *Core) SetOptimizeMode(enabled bool) {
	c.mu.Lock()
	c.optimizeMode = enabled
	c.mu.Unlock()
	if enabled {
		if routes, ok := c.store.Routes(); ok {
			for _, r := range routes {
				go c.warmOptimization(r.ID)
			}
		}
	}
}

// OptimizeMode reports whether optimization warming is enabled.
func (c *Core) OptimizeMode() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.optimizeMode
}

// Optimize returns the optimization result for routeID, computing it at
// most once concurrently per route. The route must exist in the current
// route snapshot.
func (c *Core) Optimize(ctx context.Context, routeID string) (fleet.OptimizationResult, error) {
	if routes, ok := c.store.Routes(); ok {
		found := false
		for _, r := range routes {
			if r.ID == routeID {
				found = true
				break
			}
		}
		if !found {
			return fleet.OptimizationResult{}, fmt.Errorf("optimize %q: %w", routeID, fleet.ErrRouteNotFound)
		}
	}

	return c.cache.GetOrCompute(ctx, routeID, func(ctx context.Context) (fleet.OptimizationResult, error) {
		if telemetry.OptimizeCallsTotal != nil {
			telemetry.OptimizeCallsTotal.Add(ctx, 1)
		}
		if telemetry.OptimizeInFlight != nil {
			telemetry.OptimizeInFlight.Add(ctx, 1)
			defer telemetry.OptimizeInFlight.Add(ctx, -1)
		}
		return c.src.OptimizeRoute(ctx, routeID)
	})
}

// CachedOptimization returns the cached result for routeID without
// triggering a computation.
func (c *Core) CachedOptimization(routeID string) (fleet.OptimizationResult, bool) {
	return c.cache.Peek(routeID)
}
