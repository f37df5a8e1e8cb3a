package fleet

import "time"

// Kind identifies one independently polled data collection.
type Kind string

const (
	KindVehicles Kind = "vehicles"
	KindRoutes   Kind = "routes"
	KindStops    Kind = "stops"
	KindHealth   Kind = "health"
)

// Kinds lists every polled kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindVehicles, KindRoutes, KindStops, KindHealth}
}

// VehicleStatus is the operational state reported for a vehicle.
type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleMaintenance VehicleStatus = "maintenance"
	VehicleOffline     VehicleStatus = "offline"
)

// VehicleSnapshot is one vehicle's state as of a fetch cycle.
type VehicleSnapshot struct {
	ID            string        `json:"id"`
	RouteID       string        `json:"route_id"`
	VehicleNumber string        `json:"vehicle_number"`
	Position      Position      `json:"position"`
	Bearing       float64       `json:"bearing"`   // degrees, 0-360
	SpeedKMH      float64       `json:"speed"`     // km/h, >= 0
	Occupancy     int           `json:"occupancy"` // passengers, >= 0
	DelayMinutes  int           `json:"delay"`     // positive = late
	Status        VehicleStatus `json:"status"`
	NextStopID    string        `json:"next_stop"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Active reports whether the vehicle counts toward route metrics.
func (v VehicleSnapshot) Active() bool { return v.Status == VehicleActive }

// RouteSnapshot is one route's static description as of a fetch cycle.
type RouteSnapshot struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Color            string     `json:"color"`
	Coordinates      []Position `json:"coordinates"` // ordered, >= 2 points
	StopIDs          []string   `json:"stops"`
	DistanceKM       float64    `json:"distance"`       // > 0
	EstimatedMinutes int        `json:"estimated_time"` // > 0
}

// StopSnapshot is one stop as of a fetch cycle.
type StopSnapshot struct {
	ID        string   `json:"id"`
	StopID    string   `json:"stop_id"`
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Position  Position `json:"position"`
	Amenities []string `json:"amenities"`
}

// HealthStatus is the coarse system state, either reported by the source
// or derived after threshold evaluation.
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthWarning   HealthStatus = "warning"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// HealthMetrics is the advanced-metrics bag embedded in a health snapshot.
type HealthMetrics struct {
	RequestsPerMinute  float64 `json:"requests_per_minute"`
	DBQueriesPerMinute float64 `json:"database_queries_per_minute"`
	AvgVehicleSpeed    float64 `json:"average_vehicle_speed"`
	SystemLoad         float64 `json:"system_load"`     // fraction [0,1]
	MemoryUsage        float64 `json:"memory_usage"`    // fraction [0,1]
	CacheHitRate       float64 `json:"cache_hit_rate"`  // fraction [0,1]
	NetworkLatencyMS   float64 `json:"network_latency"` // ms
}

// HealthSnapshot is one logical health reading per fetch cycle.
type HealthSnapshot struct {
	Status            HealthStatus  `json:"status"`
	DatabaseConnected bool          `json:"database_connected"`
	APIResponseTimeMS float64       `json:"api_response_time"` // ms, >= 0
	ActiveVehicles    int           `json:"active_vehicles"`
	TotalRoutes       int           `json:"total_routes"`
	TotalStops        int           `json:"total_stops"`
	Uptime            string        `json:"system_uptime"`
	LastUpdate        time.Time     `json:"last_update"`
	Metrics           HealthMetrics `json:"advanced_metrics"`
}

// EfficiencyStatus buckets a composite efficiency score.
type EfficiencyStatus string

const (
	EfficiencyExcellent EfficiencyStatus = "excellent"
	EfficiencyGood      EfficiencyStatus = "good"
	EfficiencyFair      EfficiencyStatus = "fair"
	EfficiencyPoor      EfficiencyStatus = "poor"
)

// RouteEfficiency is the derived per-route performance summary. It is a
// pure function of the current vehicle and route snapshots and is rebuilt
// in full every refresh cycle.
type RouteEfficiency struct {
	RouteID          string           `json:"route_id"`
	RouteName        string           `json:"route_name"`
	ActiveVehicles   int              `json:"active_vehicles"`
	TotalVehicles    int              `json:"total_vehicles"`
	AvgSpeed         float64          `json:"avg_speed"`
	AvgOccupancy     float64          `json:"avg_occupancy"`
	OnTimePct        float64          `json:"on_time_percentage"`
	TotalDelayMin    int              `json:"total_delay"`
	Efficiency       float64          `json:"efficiency"` // 0-100
	Status           EfficiencyStatus `json:"status"`
	EstimatedRevenue int              `json:"estimated_revenue"`
	FuelEfficiency   float64          `json:"fuel_efficiency"`
}

// TrackingPrediction is the derived forecast for one selected vehicle.
type TrackingPrediction struct {
	VehicleID          string     `json:"vehicle_id"`
	CurrentPosition    Position   `json:"current_position"`
	SpeedKMH           float64    `json:"speed"`
	Bearing            float64    `json:"bearing"`
	PredictedPositions []Position `json:"predicted_positions"`
	ETAMinutes         float64    `json:"eta_next_stop"`
	RouteProgress      float64    `json:"route_progress"` // [0,1]
}

// MapStats aggregates the current snapshot set for the map boundary.
type MapStats struct {
	TotalVehicles   int       `json:"total_vehicles"`
	ActiveVehicles  int       `json:"active_vehicles"`
	TotalRoutes     int       `json:"total_routes"`
	TotalStops      int       `json:"total_stops"`
	AvgSpeed        float64   `json:"avg_speed"`
	TotalPassengers int       `json:"total_passengers"`
	LastUpdate      time.Time `json:"last_update"`
}

// OptimizationResult is the external optimizer's answer for one route.
type OptimizationResult struct {
	RouteID              string     `json:"route_id"`
	OriginalCoordinates  []Position `json:"original_coordinates"`
	OptimizedCoordinates []Position `json:"optimized_coordinates"`
	TimeSavedMinutes     int        `json:"time_saved"`
	TrafficScore         float64    `json:"traffic_score"` // [0,1]
}

// HistoryPoint is one sample in a charted time series.
type HistoryPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// AlertSeverity ranks an alert.
type AlertSeverity string

const (
	SeverityInfo    AlertSeverity = "info"
	SeverityWarning AlertSeverity = "warning"
	SeverityError   AlertSeverity = "error"
)

// Alert is a single threshold violation or operational event.
type Alert struct {
	ID        string        `json:"id"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
}
