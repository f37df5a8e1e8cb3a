package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rishi5377/NagaraTrackLite/derive"
	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

// writeError maps the core's sentinel errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, fleet.ErrNotLoaded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "data not loaded yet"})
	case errors.Is(err, fleet.ErrVehicleNotFound), errors.Is(err, fleet.ErrRouteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) handleHello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "NagaraTrack Lite API", "status": "running"})
}

func (s *Server) handleStops(c *gin.Context) {
	stops, err := s.core.Stops()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stops)
}

func (s *Server) handleRoutes(c *gin.Context) {
	routes, err := s.core.Routes()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (s *Server) handleVehicles(c *gin.Context) {
	vehicles, err := s.core.Vehicles(c.Query("route_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if vehicles == nil {
		vehicles = []fleet.VehicleSnapshot{}
	}
	c.JSON(http.StatusOK, vehicles)
}

func (s *Server) handleHealth(c *gin.Context) {
	h, err := s.core.Health()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h)
}

func (s *Server) handleMapStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.core.MapStats())
}

func (s *Server) handleStartTracking(c *gin.Context) {
	pred, err := s.core.StartTracking(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pred)
}

func (s *Server) handleTrack(c *gin.Context) {
	pred, err := s.core.Track(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pred)
}

func (s *Server) handleStopTracking(c *gin.Context) {
	s.core.StopTracking()
	c.JSON(http.StatusOK, gin.H{"tracking": false})
}

func (s *Server) handleTrackedPrediction(c *gin.Context) {
	pred, tracked, err := s.core.TrackedPrediction()
	if err != nil {
		writeError(c, err)
		return
	}
	if !tracked {
		c.JSON(http.StatusOK, gin.H{"tracking": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": true, "prediction": pred})
}

func (s *Server) handleOptimize(c *gin.Context) {
	res, err := s.core.Optimize(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleCachedOptimization(c *gin.Context) {
	res, ok := s.core.CachedOptimization(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached optimization"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleOptimizeMode(c *gin.Context) {
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.core.SetOptimizeMode(body.Enabled)
	c.JSON(http.StatusOK, gin.H{"optimize_mode": s.core.OptimizeMode()})
}

func (s *Server) handleEfficiency(c *gin.Context) {
	key := derive.SortKey(c.DefaultQuery("sort", string(derive.SortByEfficiency)))
	c.JSON(http.StatusOK, s.core.Efficiencies(key))
}

func (s *Server) handleHistory(c *gin.Context) {
	points, ok := s.core.History(c.Param("series"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown series"})
		return
	}
	if points == nil {
		points = []fleet.HistoryPoint{}
	}
	c.JSON(http.StatusOK, points)
}

func (s *Server) handleAlerts(c *gin.Context) {
	alerts := s.core.Alerts()
	if alerts == nil {
		alerts = []fleet.Alert{}
	}
	events := s.core.Events()
	if events == nil {
		events = []fleet.Alert{}
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "events": events})
}

func (s *Server) handleSetThresholds(c *gin.Context) {
	var body struct {
		SystemLoadMax     *float64 `json:"system_load_max"`
		MemoryUsageMax    *float64 `json:"memory_usage_max"`
		ResponseTimeMaxMS *float64 `json:"response_time_max_ms"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	th := s.core.Thresholds()
	if body.SystemLoadMax != nil {
		th.SystemLoadMax = *body.SystemLoadMax
	}
	if body.MemoryUsageMax != nil {
		th.MemoryUsageMax = *body.MemoryUsageMax
	}
	if body.ResponseTimeMaxMS != nil {
		th.ResponseTimeMaxMS = *body.ResponseTimeMaxMS
	}
	s.core.SetThresholds(th)
	c.JSON(http.StatusOK, th)
}

func (s *Server) handleRefresh(c *gin.Context) {
	kind, ok := parseKind(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown kind"})
		return
	}
	s.core.RefreshNow(kind)
	c.JSON(http.StatusAccepted, gin.H{"refreshing": string(kind)})
}

func parseKind(raw string) (fleet.Kind, bool) {
	switch raw {
	case string(fleet.KindVehicles):
		return fleet.KindVehicles, true
	case string(fleet.KindRoutes):
		return fleet.KindRoutes, true
	case string(fleet.KindStops):
		return fleet.KindStops, true
	case string(fleet.KindHealth):
		return fleet.KindHealth, true
	default:
		return "", false
	}
}
