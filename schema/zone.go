package schema

const (
	HotspotZoneCollection = "hotspot_zone"
)

// HotspotZone is a circle flagged as an elevated-risk transmission area
type HotspotZone struct {
	Order    int     `json:"-" bson:"order"`
	Name     string  `json:"name" bson:"name"`
	Center   GeoJSON `json:"-" bson:"center"`
	Lat      float64 `json:"latitude" bson:"latitude"`
	Lng      float64 `json:"longitude" bson:"longitude"`
	RadiusKm float64 `json:"radius_km" bson:"radius_km"`
}

func newZone(order int, name string, lat, lng, radiusKm float64) HotspotZone {
	return HotspotZone{
		Order:    order,
		Name:     name,
		Center:   NewGeoJSONPoint(Location{Latitude: lat, Longitude: lng}),
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radiusKm,
	}
}

// KenyanHotspotZones are the known schistosomiasis hotspots in Kenya.
// Coordinates are approximate centers. The order matters: the first zone
// containing a point is the one reported.
var KenyanHotspotZones = []HotspotZone{
	newZone(0, "Lake Victoria Basin (Kisumu/Homa Bay)", -0.100, 34.750, 80),
	newZone(1, "Mwea Irrigation Scheme", -0.716, 37.360, 25),
	newZone(2, "Coast (Kwale/Msambweni)", -4.170, 39.450, 40),
	newZone(3, "Lake Baringo", 0.630, 36.050, 15),
	newZone(4, "Lake Naivasha", -0.770, 36.420, 15),
	newZone(5, "Taveta / Lake Jipe", -3.580, 37.750, 20),
}
