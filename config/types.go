package config

// ServerConfig contains the HTTP boundary configuration
type ServerConfig struct {
	Port        int      `yaml:"port" validate:"gt=0"`
	CORSOrigins []string `yaml:"corsOrigins"`
}

// SourceConfig describes where snapshots come from
type SourceConfig struct {
	Mode                string `yaml:"mode" validate:"omitempty,oneof=sim http"`
	BaseURL             string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"` // optional GTFS-RT overlay
}

// PollingConfig holds per-kind refresh cadences in milliseconds
type PollingConfig struct {
	VehiclesMS int `yaml:"vehiclesMS" validate:"gte=0"`
	RoutesMS   int `yaml:"routesMS" validate:"gte=0"`
	StopsMS    int `yaml:"stopsMS" validate:"gte=0"`
	HealthMS   int `yaml:"healthMS" validate:"gte=0"`
}

// AlertsConfig holds threshold defaults and buffer capacities
type AlertsConfig struct {
	SystemLoadMax     float64 `yaml:"systemLoadMax" validate:"gte=0,lte=1"`
	MemoryUsageMax    float64 `yaml:"memoryUsageMax" validate:"gte=0,lte=1"`
	ResponseTimeMaxMS float64 `yaml:"responseTimeMaxMS" validate:"gte=0"`
	HistorySize       int     `yaml:"historySize" validate:"gte=0"`
	EventLogSize      int     `yaml:"eventLogSize" validate:"gte=0"`
}

// OptimizerConfig controls the route-optimization cache
type OptimizerConfig struct {
	TTLSeconds int `yaml:"ttlSeconds"` // <= 0 keeps results forever
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Source    SourceConfig    `yaml:"source"`
	Polling   PollingConfig   `yaml:"polling"`
	Alerts    AlertsConfig    `yaml:"alerts"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
}
