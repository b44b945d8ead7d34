package geo

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"github.com/bitmark-inc/schisto-api/schema"
)

var (
	ErrNoGeoInfoFound         = fmt.Errorf("no geo information found")
	ErrResolverNotInitialized = fmt.Errorf("location resolver is not initialized")
)

const resolveTimeout = 5 * time.Second

// LocationResolver - interface for resolving the political information of a location
type LocationResolver interface {
	GetPoliticalInfo(context.Context, schema.Location) (schema.Location, error)
}

// Geocoder is the part of the google maps client used for reverse geocoding
type Geocoder interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

type GeocodingLocationResolver struct {
	client Geocoder
}

func NewGeocodingLocationResolver(client Geocoder) *GeocodingLocationResolver {
	return &GeocodingLocationResolver{
		client: client,
	}
}

// NewGeocodingLocationResolverWithKey creates a resolver backed by a google
// maps client of a given api key
func NewGeocodingLocationResolverWithKey(apiKey string) (*GeocodingLocationResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return NewGeocodingLocationResolver(client), nil
}

func (g *GeocodingLocationResolver) GetPoliticalInfo(ctx context.Context, loc schema.Location) (schema.Location, error) {
	if g == nil || g.client == nil {
		return loc, ErrResolverNotInitialized
	}

	if loc.Country != "" {
		return loc, nil
	}

	ctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()

	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{
			Lat: loc.Latitude,
			Lng: loc.Longitude,
		},
		ResultType: []string{"administrative_area_level_2|administrative_area_level_1"},
		Language:   "en",
	})
	if nil != err {
		return loc, err
	}

	if len(geos) == 0 {
		return loc, ErrNoGeoInfoFound
	}

	var level1, level2 string
	for _, a := range geos[0].AddressComponents {
		if len(a.Types) > 0 {
			switch a.Types[0] {
			case "administrative_area_level_1":
				level1 = a.LongName
			case "administrative_area_level_2":
				level2 = a.LongName
			case "country":
				loc.Country = a.LongName
			}
		}
	}

	loc.Address = geos[0].FormattedAddress
	loc.County = level1
	if loc.County == "" {
		loc.County = level2
	}

	return loc, nil
}
