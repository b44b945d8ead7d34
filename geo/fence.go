package geo

import (
	"math"

	"github.com/bitmark-inc/schisto-api/schema"
)

// EarthRadiusKm is the mean radius of the earth
const EarthRadiusKm = 6371.0

func toRadians(degree float64) float64 {
	return degree * math.Pi / 180
}

// Distance returns the great-circle distance in kilometers between two
// points by the haversine formula
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// MatchZone returns the first zone, in the given order, whose circle contains
// the location. It is not necessarily the closest one.
func MatchZone(loc schema.Location, zones []schema.HotspotZone) (schema.HotspotZone, bool) {
	for _, z := range zones {
		if Distance(loc.Latitude, loc.Longitude, z.Lat, z.Lng) <= z.RadiusKm {
			return z, true
		}
	}
	return schema.HotspotZone{}, false
}
