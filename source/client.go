package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

// Client is the read-only boundary the telemetry core polls. OptimizeRoute
// is expensive; the core's optimization cache guarantees it is called at
// most once concurrently per route id.
type Client interface {
	ListStops(ctx context.Context) ([]fleet.StopSnapshot, error)
	ListRoutes(ctx context.Context) ([]fleet.RouteSnapshot, error)
	ListVehicles(ctx context.Context) ([]fleet.VehicleSnapshot, error)
	GetHealth(ctx context.Context) (fleet.HealthSnapshot, error)
	OptimizeRoute(ctx context.Context, routeID string) (fleet.OptimizationResult, error)
}

// HTTPClient talks JSON to a remote fleet API exposing the /api surface.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	tracer     trace.Tracer
}

// NewHTTPClient builds a client for the API rooted at baseURL (for
// example "http://localhost:8000/api"). The transport is instrumented
// with OpenTelemetry.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		baseURL: baseURL,
		tracer:  otel.Tracer("fleet-source"),
	}
}

func (c *HTTPClient) ListStops(ctx context.Context) ([]fleet.StopSnapshot, error) {
	var out []fleet.StopSnapshot
	if err := c.getJSON(ctx, "/stops", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListRoutes(ctx context.Context) ([]fleet.RouteSnapshot, error) {
	var out []fleet.RouteSnapshot
	if err := c.getJSON(ctx, "/routes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ListVehicles(ctx context.Context) ([]fleet.VehicleSnapshot, error) {
	var out []fleet.VehicleSnapshot
	if err := c.getJSON(ctx, "/vehicles", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetHealth(ctx context.Context) (fleet.HealthSnapshot, error) {
	var out fleet.HealthSnapshot
	if err := c.getJSON(ctx, "/health", &out); err != nil {
		return fleet.HealthSnapshot{}, err
	}
	return out, nil
}

func (c *HTTPClient) OptimizeRoute(ctx context.Context, routeID string) (fleet.OptimizationResult, error) {
	var out fleet.OptimizationResult
	path := "/routes/" + url.PathEscape(routeID) + "/optimize"
	if err := c.doJSON(ctx, http.MethodPost, path, &out); err != nil {
		return fleet.OptimizationResult{}, err
	}
	return out, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, out)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, out any) error {
	ctx, span := c.tracer.Start(ctx, "source."+method,
		trace.WithAttributes(
			attribute.String("api.path", path),
			attribute.String("api.endpoint", c.baseURL),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("fetch %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("%s returned HTTP %d: %s", path, resp.StatusCode, body)
		span.RecordError(err)
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
