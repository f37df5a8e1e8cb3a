// Package alerting keeps the charted history series and evaluates the
// health threshold rules.
//
// History series are fixed-capacity ring buffers fed one point per
// completed health cycle. Threshold alerts are stateless: each cycle's
// violations are computed fresh and replace the previous cycle's set.
// The event log is the one accumulating structure, a small newest-first
// list of operational events (fetch failures and the like) with FIFO
// eviction.
package alerting

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

// Series names tracked for charting.
const (
	SeriesRequests     = "requests_per_minute"
	SeriesDBQueries    = "db_queries_per_minute"
	SeriesVehicles     = "vehicle_count"
	SeriesSystemLoad   = "system_load"
	SeriesResponseTime = "response_time"
)

// SeriesNames lists the tracked series in display order.
func SeriesNames() []string {
	return []string{SeriesRequests, SeriesDBQueries, SeriesVehicles, SeriesSystemLoad, SeriesResponseTime}
}

// Thresholds are the health limits evaluated each cycle.
type Thresholds struct {
	SystemLoadMax     float64 `json:"system_load_max"`
	MemoryUsageMax    float64 `json:"memory_usage_max"`
	ResponseTimeMaxMS float64 `json:"response_time_max_ms"`
}

// DefaultThresholds returns the stock limits.
func DefaultThresholds() Thresholds {
	return Thresholds{SystemLoadMax: 0.8, MemoryUsageMax: 0.8, ResponseTimeMaxMS: 1000}
}

// Tracker owns the history ring buffers, the current threshold alert
// set, and the bounded event log. Only the health refresh cycle writes
// it; boundary reads copy out under the lock.
type Tracker struct {
	mu         sync.RWMutex
	thresholds Thresholds
	series     map[string]*ring
	capacity   int

	cycleAlerts []fleet.Alert
	status      fleet.HealthStatus

	events   []fleet.Alert
	eventCap int
}

// NewTracker builds a tracker with the given ring capacity and event log
// capacity. Non-positive capacities fall back to 20 and 5.
func NewTracker(historyCap, eventCap int, th Thresholds) *Tracker {
	if historyCap <= 0 {
		historyCap = 20
	}
	if eventCap <= 0 {
		eventCap = 5
	}
	t := &Tracker{
		thresholds: th,
		series:     map[string]*ring{},
		capacity:   historyCap,
		eventCap:   eventCap,
		status:     fleet.HealthHealthy,
	}
	for _, name := range SeriesNames() {
		t.series[name] = newRing(historyCap)
	}
	return t
}

// SetThresholds replaces the limits used by subsequent cycles.
func (t *Tracker) SetThresholds(th Thresholds) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.thresholds = th
}

// GetThresholds returns the limits currently in force.
func (t *Tracker) GetThresholds() Thresholds {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.thresholds
}

// Observe ingests one health snapshot: appends a point to every series
// and recomputes the cycle's threshold alerts and derived status. The
// returned alerts are this cycle's violations only.
func (t *Tracker) Observe(h fleet.HealthSnapshot) ([]fleet.Alert, fleet.HealthStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.series[SeriesRequests].append(fleet.HistoryPoint{Timestamp: now, Value: h.Metrics.RequestsPerMinute})
	t.series[SeriesDBQueries].append(fleet.HistoryPoint{Timestamp: now, Value: h.Metrics.DBQueriesPerMinute})
	t.series[SeriesVehicles].append(fleet.HistoryPoint{Timestamp: now, Value: float64(h.ActiveVehicles)})
	t.series[SeriesSystemLoad].append(fleet.HistoryPoint{Timestamp: now, Value: h.Metrics.SystemLoad})
	t.series[SeriesResponseTime].append(fleet.HistoryPoint{Timestamp: now, Value: h.APIResponseTimeMS})

	alerts, status := evaluate(h, t.thresholds, now)
	t.cycleAlerts = alerts
	t.status = status
	return copyAlerts(alerts), status
}

// evaluate applies the threshold rules to one snapshot. Errors dominate
// warnings; with no violations the source's own status stands.
func evaluate(h fleet.HealthSnapshot, th Thresholds, now time.Time) ([]fleet.Alert, fleet.HealthStatus) {
	var alerts []fleet.Alert
	add := func(sev fleet.AlertSeverity, msg string) {
		alerts = append(alerts, fleet.Alert{
			ID:        uuid.NewString(),
			Severity:  sev,
			Message:   msg,
			Timestamp: now,
		})
	}

	if h.Metrics.SystemLoad > th.SystemLoadMax {
		add(fleet.SeverityWarning, fmt.Sprintf("High system load: %.0f%%", h.Metrics.SystemLoad*100))
	}
	if h.Metrics.MemoryUsage > th.MemoryUsageMax {
		add(fleet.SeverityWarning, fmt.Sprintf("High memory usage: %.0f%%", h.Metrics.MemoryUsage*100))
	}
	if h.APIResponseTimeMS > th.ResponseTimeMaxMS {
		add(fleet.SeverityError, fmt.Sprintf("Slow API response: %.0fms", h.APIResponseTimeMS))
	}
	if !h.DatabaseConnected {
		add(fleet.SeverityError, "Database disconnected")
	}

	status := h.Status
	for _, a := range alerts {
		switch a.Severity {
		case fleet.SeverityError:
			return alerts, fleet.HealthUnhealthy
		case fleet.SeverityWarning:
			status = fleet.HealthWarning
		}
	}
	return alerts, status
}

// CurrentAlerts returns the most recent cycle's threshold violations.
func (t *Tracker) CurrentAlerts() []fleet.Alert {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyAlerts(t.cycleAlerts)
}

// Status returns the derived status from the most recent cycle.
func (t *Tracker) Status() fleet.HealthStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// History returns a copy of the named series in arrival order, oldest
// first. ok is false for an unknown series name.
func (t *Tracker) History(name string) ([]fleet.HistoryPoint, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.series[name]
	if !ok {
		return nil, false
	}
	return r.snapshot(), true
}

// RecordEvent appends an ad-hoc operational event to the bounded log,
// newest first, evicting the oldest entry once full.
func (t *Tracker) RecordEvent(sev fleet.AlertSeverity, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := fleet.Alert{ID: uuid.NewString(), Severity: sev, Message: msg, Timestamp: time.Now()}
	t.events = append([]fleet.Alert{e}, t.events...)
	if len(t.events) > t.eventCap {
		t.events = t.events[:t.eventCap]
	}
}

// Events returns a copy of the event log, newest first.
func (t *Tracker) Events() []fleet.Alert {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return copyAlerts(t.events)
}

func copyAlerts(in []fleet.Alert) []fleet.Alert {
	out := make([]fleet.Alert, len(in))
	copy(out, in)
	return out
}
