// Package httpapi exposes the fleet core over a JSON REST surface for
// the dashboard frontend.
package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	nagaratrack "github.com/Rishi5377/NagaraTrackLite"
	"github.com/Rishi5377/NagaraTrackLite/config"
)

// Server wraps the gin engine and the core it serves.
type Server struct {
	core   *nagaratrack.Core
	cfg    config.ServerConfig
	logger *slog.Logger
	engine *gin.Engine
}

func NewServer(core *nagaratrack.Core, cfg config.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		core:   core,
		cfg:    cfg,
		logger: logger.With("component", "httpapi"),
	}
	s.engine = s.buildRouter()
	return s
}

// Handler returns the http.Handler for the API, usable directly with
// httptest or a custom http.Server.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves the API on the configured port until the listener fails.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("http api listening", "addr", addr)
	return s.engine.Run(addr)
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(s.cfg.CORSOrigins) == 1 && s.cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else if len(s.cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = s.cfg.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"*"}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		api.GET("/", s.handleHello)
		api.GET("/stops", s.handleStops)
		api.GET("/routes", s.handleRoutes)
		api.GET("/vehicles", s.handleVehicles)
		api.GET("/health", s.handleHealth)
		api.GET("/map/stats", s.handleMapStats)

		api.POST("/vehicles/:id/track", s.handleStartTracking)
		api.GET("/vehicles/:id/track", s.handleTrack)
		api.DELETE("/vehicles/track", s.handleStopTracking)
		api.GET("/vehicles/track", s.handleTrackedPrediction)

		api.POST("/routes/:id/optimize", s.handleOptimize)
		api.GET("/routes/:id/optimize", s.handleCachedOptimization)
		api.PUT("/optimize-mode", s.handleOptimizeMode)

		api.GET("/analytics/efficiency", s.handleEfficiency)
		api.GET("/analytics/history/:series", s.handleHistory)
		api.GET("/analytics/alerts", s.handleAlerts)
		api.PUT("/alerts/thresholds", s.handleSetThresholds)

		api.POST("/refresh/:kind", s.handleRefresh)
	}

	return r
}
