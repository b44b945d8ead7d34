package schema

// Location is a WGS84 position with optional political information
// resolved by reverse geocoding.
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
	Address   string  `json:"address,omitempty" bson:"-"`
	Country   string  `json:"country,omitempty" bson:"-"`
	County    string  `json:"county,omitempty" bson:"-"`
}

// GeoJSON - mongo location format
type GeoJSON struct {
	Type        string    `json:"type" bson:"type"`
	Coordinates []float64 `json:"coordinates" bson:"coordinates"`
}

// NewGeoJSONPoint returns a GeoJSON point of a location. GeoJSON keeps
// longitude first.
func NewGeoJSONPoint(loc Location) GeoJSON {
	return GeoJSON{
		Type:        "Point",
		Coordinates: []float64{loc.Longitude, loc.Latitude},
	}
}
