package fleet

import "math"

// Position is a WGS84 coordinate.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

const earthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance between two positions in
// kilometers.
func HaversineKM(a, b Position) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// BearingDegrees returns the compass heading from a to b in [0,360).
// Positions close enough for city-scale work; a flat approximation of the
// lat/lon deltas is sufficient at fleet distances.
func BearingDegrees(a, b Position) float64 {
	dLon := b.Lon - a.Lon
	dLat := b.Lat - a.Lat
	deg := math.Atan2(dLon, dLat) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// Advance moves pos distanceKM along the given compass bearing and
// returns the new position. Longitude displacement is corrected for
// latitude.
func Advance(pos Position, bearingDeg, distanceKM float64) Position {
	rad := bearingDeg * math.Pi / 180
	dLat := (distanceKM * math.Cos(rad)) / 110.574
	lonScale := 111.320 * math.Cos(pos.Lat*math.Pi/180)
	if lonScale < 1e-9 {
		lonScale = 1e-9
	}
	dLon := (distanceKM * math.Sin(rad)) / lonScale
	return Position{Lat: pos.Lat + dLat, Lon: pos.Lon + dLon}
}

// PathLengthKM sums the haversine distances along an ordered coordinate
// sequence.
func PathLengthKM(coords []Position) float64 {
	total := 0.0
	for i := 0; i+1 < len(coords); i++ {
		total += HaversineKM(coords[i], coords[i+1])
	}
	return total
}

// ProjectOntoPath finds the point on the polyline closest to pos and
// returns the cumulative distance in kilometers from the start of the
// polyline to that point. The projection works segment by segment in
// coordinate space, the same way vehicle positions are snapped to route
// shapes.
func ProjectOntoPath(pos Position, coords []Position) float64 {
	if len(coords) < 2 {
		return 0
	}

	minDist := math.MaxFloat64
	bestSeg := 0
	bestT := 0.0
	for i := 0; i+1 < len(coords); i++ {
		c1, c2 := coords[i], coords[i+1]
		vx := c2.Lon - c1.Lon
		vy := c2.Lat - c1.Lat
		wx := pos.Lon - c1.Lon
		wy := pos.Lat - c1.Lat

		t := 0.0
		if denom := vx*vx + vy*vy; denom > 0 {
			t = (wx*vx + wy*vy) / denom
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
		}

		px := c1.Lon + t*vx
		py := c1.Lat + t*vy
		dx := pos.Lon - px
		dy := pos.Lat - py
		if d := dx*dx + dy*dy; d < minDist {
			minDist = d
			bestSeg = i
			bestT = t
		}
	}

	cumKM := 0.0
	for i := 0; i < bestSeg; i++ {
		cumKM += HaversineKM(coords[i], coords[i+1])
	}
	cumKM += bestT * HaversineKM(coords[bestSeg], coords[bestSeg+1])
	return cumKM
}
