package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

// GTFSRTSource overlays another Client with vehicle positions decoded
// from a GTFS-RT VehiclePositions protobuf feed. Stops, routes, health,
// and optimization still come from the wrapped client; only
// ListVehicles is replaced.
type GTFSRTSource struct {
	Client

	feedURL    string
	httpClient *http.Client
}

func NewGTFSRTSource(base Client, feedURL string, timeout time.Duration) *GTFSRTSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GTFSRTSource{
		Client:     base,
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (g *GTFSRTSource) ListVehicles(ctx context.Context) ([]fleet.VehicleSnapshot, error) {
	fm, err := g.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	var out []fleet.VehicleSnapshot
	for _, e := range fm.Entity {
		vp := e.Vehicle
		if vp == nil || vp.Position == nil {
			continue
		}

		v := fleet.VehicleSnapshot{
			Status: fleet.VehicleActive,
			Position: fleet.Position{
				Lat: float64(vp.Position.GetLatitude()),
				Lon: float64(vp.Position.GetLongitude()),
			},
			Bearing:  float64(vp.Position.GetBearing()),
			SpeedKMH: float64(vp.Position.GetSpeed()) * 3.6, // feed speed is m/s
		}
		if vp.Vehicle != nil {
			v.ID = vp.Vehicle.GetId()
			v.VehicleNumber = vp.Vehicle.GetLabel()
		}
		if v.ID == "" && e.Id != nil {
			v.ID = *e.Id
		}
		if vp.Trip != nil {
			v.RouteID = vp.Trip.GetRouteId()
		}
		v.NextStopID = vp.GetStopId()
		if ts := vp.GetTimestamp(); ts > 0 {
			v.Timestamp = time.Unix(int64(ts), 0)
		} else {
			v.Timestamp = time.Now()
		}
		out = append(out, v)
	}
	return out, nil
}

func (g *GTFSRTSource) fetchFeed(ctx context.Context) (*gtfsrtpb.FeedMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch vehicle positions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, g.feedURL)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read vehicle positions: %w", err)
	}
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("decode vehicle positions: %w", err)
	}
	return &fm, nil
}
