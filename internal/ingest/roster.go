package ingest

// City is one monitored location.
type City struct {
	Name  string
	State string
	Lat   float64
	Lon   float64
}

// DefaultRoster returns the monitored cities. The roster is fixed at
// startup; every ingestion run walks it in this order.
func DefaultRoster() []City {
	return []City{
		{Name: "Delhi", State: "Delhi", Lat: 28.6139, Lon: 77.2090},
		{Name: "Mumbai", State: "Maharashtra", Lat: 19.0760, Lon: 72.8777},
		{Name: "Chennai", State: "Tamil Nadu", Lat: 13.0827, Lon: 80.2707},
		{Name: "Kolkata", State: "West Bengal", Lat: 22.5726, Lon: 88.3639},
		{Name: "Bangalore", State: "Karnataka", Lat: 12.9716, Lon: 77.5946},
		{Name: "Hyderabad", State: "Telangana", Lat: 17.3850, Lon: 78.4867},
		{Name: "Ahmedabad", State: "Gujarat", Lat: 23.0225, Lon: 72.5714},
		{Name: "Pune", State: "Maharashtra", Lat: 18.5204, Lon: 73.8567},
		{Name: "Jaipur", State: "Rajasthan", Lat: 26.9124, Lon: 75.7873},
		{Name: "Lucknow", State: "Uttar Pradesh", Lat: 26.8467, Lon: 80.9462},
	}
}
