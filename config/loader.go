package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults applied after load for fields left at zero.
const (
	DefaultPort              = 8000
	DefaultTimeoutMS         = 30000
	DefaultVehiclesMS        = 5000
	DefaultRoutesMS          = 60000
	DefaultStopsMS           = 60000
	DefaultHealthMS          = 15000
	DefaultSystemLoadMax     = 0.8
	DefaultMemoryUsageMax    = 0.8
	DefaultResponseTimeMaxMS = 1000
	DefaultHistorySize       = 20
	DefaultEventLogSize      = 5
	DefaultOptimizerTTLSec   = 300
)

// LoadAppConfig loads and validates the application configuration.
// A .env file next to the binary is applied to the environment first,
// then the YAML file at path (falling back to config.yml), then
// environment overrides for the deploy-variable settings.
func LoadAppConfig(path string) (AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	paths := []string{path, "config.yml"}
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return AppConfig{}, err
		}
		break
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if s := os.Getenv("PORT"); s != "" {
		if p, err := strconv.Atoi(s); err == nil {
			cfg.Server.Port = p
		}
	}
	if s := os.Getenv("SOURCE_MODE"); s != "" {
		cfg.Source.Mode = s
	}
	if s := os.Getenv("SOURCE_URL"); s != "" {
		cfg.Source.BaseURL = s
	}
	if s := os.Getenv("CORS_ORIGINS"); s != "" {
		cfg.Server.CORSOrigins = splitCSV(s)
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Source.Mode == "" {
		cfg.Source.Mode = "sim"
	}
	if cfg.Source.TimeoutMS == 0 {
		cfg.Source.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Polling.VehiclesMS == 0 {
		cfg.Polling.VehiclesMS = DefaultVehiclesMS
	}
	if cfg.Polling.RoutesMS == 0 {
		cfg.Polling.RoutesMS = DefaultRoutesMS
	}
	if cfg.Polling.StopsMS == 0 {
		cfg.Polling.StopsMS = DefaultStopsMS
	}
	if cfg.Polling.HealthMS == 0 {
		cfg.Polling.HealthMS = DefaultHealthMS
	}
	if cfg.Alerts.SystemLoadMax == 0 {
		cfg.Alerts.SystemLoadMax = DefaultSystemLoadMax
	}
	if cfg.Alerts.MemoryUsageMax == 0 {
		cfg.Alerts.MemoryUsageMax = DefaultMemoryUsageMax
	}
	if cfg.Alerts.ResponseTimeMaxMS == 0 {
		cfg.Alerts.ResponseTimeMaxMS = DefaultResponseTimeMaxMS
	}
	if cfg.Alerts.HistorySize == 0 {
		cfg.Alerts.HistorySize = DefaultHistorySize
	}
	if cfg.Alerts.EventLogSize == 0 {
		cfg.Alerts.EventLogSize = DefaultEventLogSize
	}
	if cfg.Optimizer.TTLSeconds == 0 {
		cfg.Optimizer.TTLSeconds = DefaultOptimizerTTLSec
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
