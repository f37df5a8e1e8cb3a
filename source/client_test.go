package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

func fleetAPIStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vehicles", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]fleet.VehicleSnapshot{
			{ID: "v1", RouteID: "r1", SpeedKMH: 32, Status: fleet.VehicleActive},
		})
	})
	mux.HandleFunc("/api/routes", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]fleet.RouteSnapshot{{ID: "r1", Name: "Express"}})
	})
	mux.HandleFunc("/api/stops", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]fleet.StopSnapshot{{ID: "s1", StopID: "CST001"}})
	})
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(fleet.HealthSnapshot{Status: fleet.HealthHealthy, DatabaseConnected: true})
	})
	mux.HandleFunc("/api/routes/r1/optimize", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(fleet.OptimizationResult{RouteID: "r1", TimeSavedMinutes: 7})
	})
	mux.HandleFunc("/api/routes/missing/optimize", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Route not found"}`, http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func TestHTTPClientReads(t *testing.T) {
	srv := fleetAPIStub(t)
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/api", 5*time.Second)
	ctx := context.Background()

	vehicles, err := c.ListVehicles(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "v1", vehicles[0].ID)

	routes, err := c.ListRoutes(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, "Express", routes[0].Name)

	stops, err := c.ListStops(ctx)
	require.NoError(t, err)
	assert.Len(t, stops, 1)

	h, err := c.GetHealth(ctx)
	require.NoError(t, err)
	assert.Equal(t, fleet.HealthHealthy, h.Status)

	res, err := c.OptimizeRoute(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 7, res.TimeSavedMinutes)
}

func TestHTTPClientNon200(t *testing.T) {
	srv := fleetAPIStub(t)
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/api", 5*time.Second)

	_, err := c.OptimizeRoute(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestHTTPClientBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 5*time.Second)
	_, err := c.ListVehicles(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestHTTPClientContextCancelled(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewHTTPClient(srv.URL, 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.ListVehicles(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
