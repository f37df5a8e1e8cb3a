package source

import "github.com/Rishi5377/NagaraTrackLite/fleet"

// Seed dataset for the simulator: a small Mumbai network with eight
// stops, three routes, and two vehicles per route.

func seedStops() []fleet.StopSnapshot {
	return []fleet.StopSnapshot{
		{StopID: "CST001", Code: "CST", Name: "Chhatrapati Shivaji Terminus", Position: fleet.Position{Lat: 18.9394, Lon: 72.8347}, Amenities: []string{"shelter", "seating", "digital_display"}},
		{StopID: "BKC002", Code: "BKC", Name: "Bandra Kurla Complex", Position: fleet.Position{Lat: 19.0638, Lon: 72.8697}, Amenities: []string{"shelter", "seating"}},
		{StopID: "JUH003", Code: "JUH", Name: "Juhu Beach", Position: fleet.Position{Lat: 19.0968, Lon: 72.8267}, Amenities: []string{"shelter"}},
		{StopID: "AND004", Code: "AND", Name: "Andheri Station", Position: fleet.Position{Lat: 19.1197, Lon: 72.8397}, Amenities: []string{"shelter", "seating", "digital_display", "wifi"}},
		{StopID: "POW005", Code: "POW", Name: "Powai Lake", Position: fleet.Position{Lat: 19.1247, Lon: 72.8977}, Amenities: []string{"shelter", "seating"}},
		{StopID: "VRL006", Code: "VRL", Name: "Versova", Position: fleet.Position{Lat: 19.1317, Lon: 72.8097}, Amenities: []string{"shelter"}},
		{StopID: "GTW007", Code: "GTW", Name: "Gateway of India", Position: fleet.Position{Lat: 18.9218, Lon: 72.8347}, Amenities: []string{"shelter", "seating", "tourist_info"}},
		{StopID: "NFH008", Code: "NFH", Name: "Nariman Point", Position: fleet.Position{Lat: 18.9267, Lon: 72.8226}, Amenities: []string{"shelter", "seating", "digital_display"}},
	}
}

type seedRoute struct {
	name        string
	color       string
	description string
	coordinates []fleet.Position
	stopIDs     []string
	distanceKM  float64
	estimatedM  int
}

func seedRoutes() []seedRoute {
	return []seedRoute{
		{
			name:        "Express Line 1: CST - Andheri",
			color:       "#FF6B6B",
			description: "High-frequency express route connecting South Mumbai to Western suburbs",
			coordinates: []fleet.Position{
				{Lat: 18.9394, Lon: 72.8347},
				{Lat: 18.9494, Lon: 72.8297},
				{Lat: 18.9267, Lon: 72.8226},
				{Lat: 18.9618, Lon: 72.8347},
				{Lat: 19.0176, Lon: 72.8247},
				{Lat: 19.0338, Lon: 72.8197},
				{Lat: 19.0548, Lon: 72.8297},
				{Lat: 19.0748, Lon: 72.8397},
				{Lat: 19.1197, Lon: 72.8397},
			},
			stopIDs:    []string{"CST001", "NFH008", "AND004"},
			distanceKM: 28.5,
			estimatedM: 65,
		},
		{
			name:        "Coastal Route 2: Gateway - Juhu",
			color:       "#4ECDC4",
			description: "Scenic coastal route connecting tourist destinations",
			coordinates: []fleet.Position{
				{Lat: 18.9218, Lon: 72.8347},
				{Lat: 18.9358, Lon: 72.8276},
				{Lat: 18.9467, Lon: 72.8226},
				{Lat: 18.9876, Lon: 72.8197},
				{Lat: 19.0376, Lon: 72.8147},
				{Lat: 19.0576, Lon: 72.8197},
				{Lat: 19.0968, Lon: 72.8267},
			},
			stopIDs:    []string{"GTW007", "NFH008", "JUH003"},
			distanceKM: 22.3,
			estimatedM: 55,
		},
		{
			name:        "Tech Route 3: BKC - Powai",
			color:       "#45B7D1",
			description: "Business district connector for IT professionals",
			coordinates: []fleet.Position{
				{Lat: 19.0638, Lon: 72.8697},
				{Lat: 19.0738, Lon: 72.8797},
				{Lat: 19.0938, Lon: 72.8897},
				{Lat: 19.1047, Lon: 72.8977},
				{Lat: 19.1247, Lon: 72.8977},
			},
			stopIDs:    []string{"BKC002", "POW005"},
			distanceKM: 18.7,
			estimatedM: 42,
		},
	}
}

func seedVehicleNumbers() []string {
	return []string{"MH01-AB-1234", "MH01-CD-5678", "MH01-EF-9012"}
}
