package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/schisto-api/schema"
)

var ErrNoHotspotZone = fmt.Errorf("no hotspot zone found")

type HotspotZones interface {
	ListHotspotZones() ([]schema.HotspotZone, error)
	SaveHotspotZones([]schema.HotspotZone) error
}

// ListHotspotZones returns all hotspot zones in their declaration order
func (m *mongoDB) ListHotspotZones() ([]schema.HotspotZone, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.HotspotZoneCollection)
	cur, err := c.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		return nil, err
	}

	zones := make([]schema.HotspotZone, 0)
	if err := cur.All(ctx, &zones); err != nil {
		return nil, err
	}

	if len(zones) == 0 {
		return nil, ErrNoHotspotZone
	}

	log.WithField("prefix", mongoLogPrefix).Debugf("load %d hotspot zones", len(zones))
	return zones, nil
}

// SaveHotspotZones upserts zones by their order
func (m *mongoDB) SaveHotspotZones(zones []schema.HotspotZone) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.HotspotZoneCollection)
	for _, z := range zones {
		if z.Center.Type == "" {
			z.Center = schema.NewGeoJSONPoint(schema.Location{Latitude: z.Lat, Longitude: z.Lng})
		}

		if _, err := c.ReplaceOne(ctx, bson.M{"order": z.Order}, z, options.Replace().SetUpsert(true)); err != nil {
			log.WithField("prefix", mongoLogPrefix).WithError(err).Errorf("save hotspot zone %s", z.Name)
			return err
		}
	}

	return nil
}
