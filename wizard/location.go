package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/schisto-api/geo"
	"github.com/bitmark-inc/schisto-api/schema"
)

type GeoStatus string

const (
	GeoIdle     GeoStatus = "idle"
	GeoLocating GeoStatus = "locating"
	GeoFound    GeoStatus = "found"
	GeoDenied   GeoStatus = "denied"
)

var (
	ErrLocationInProgress  = fmt.Errorf("location request is in progress")
	ErrLocationUnavailable = fmt.Errorf("location capability is unavailable")
	ErrPermissionDenied    = fmt.Errorf("location permission denied")
)

// GeoState describes the location acquisition of a wizard run
type GeoState struct {
	Status   GeoStatus        `json:"status"`
	Token    Token            `json:"token,omitempty"`
	Location *schema.Location `json:"location,omitempty"`
}

// Locator returns the current position of a device once
type Locator interface {
	CurrentPosition(ctx context.Context) (schema.Location, error)
}

// Start issues the one-shot location request of an assessment run. The
// request must be completed by CompleteLocation with the returned token.
func (w *Wizard) Start() (Token, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepIntro {
		return 0, ErrInvalidTransition
	}

	if w.geo.Status == GeoLocating {
		return 0, ErrLocationInProgress
	}

	token := w.issueToken()
	w.locateToken = token
	w.geo = GeoState{Status: GeoLocating, Token: token}

	log.WithField("token", token).Debug("locating")
	return token, nil
}

// CompleteLocation applies the outcome of a location request. A failure of
// any kind moves the wizard to the geo step for manual answers. A found
// location is matched against the hotspot zones and the wizard moves to the
// geo step after the pacing delay. It returns false if the token is stale.
func (w *Wizard) CompleteLocation(token Token, loc schema.Location, err error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if token == 0 || token != w.locateToken || w.geo.Status != GeoLocating {
		log.WithField("token", token).Warn("drop stale location result")
		return false
	}

	if err != nil {
		log.WithError(err).Info("location denied")
		w.geo.Status = GeoDenied
		w.step = StepGeo
		return true
	}

	zone, near := geo.MatchZone(loc, w.zones)

	coordinates := loc
	w.record.Coordinates = &coordinates
	w.record.NearWater = near
	w.record.DetectedZoneName = zone.Name

	found := loc
	w.geo.Status = GeoFound
	w.geo.Location = &found

	log.WithFields(logrus.Fields{
		"near_zone": near,
		"zone":      zone.Name,
	}).Info("location found")

	if w.pacingDelay <= 0 {
		w.step = StepGeo
	} else {
		time.AfterFunc(w.pacingDelay, func() {
			w.advanceAfterFound(token)
		})
	}

	return true
}

func (w *Wizard) advanceAfterFound(token Token) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if token == w.locateToken && w.geo.Status == GeoFound && w.step == StepIntro {
		w.step = StepGeo
	}
}

// Locate starts a location request and resolves it in the background with
// the given locator. A nil locator is treated as an unavailable capability.
func (w *Wizard) Locate(ctx context.Context, locator Locator) (Token, error) {
	token, err := w.Start()
	if err != nil {
		return 0, err
	}

	if locator == nil {
		w.CompleteLocation(token, schema.Location{}, ErrLocationUnavailable)
		return token, nil
	}

	go func() {
		loc, err := locator.CurrentPosition(ctx)
		w.CompleteLocation(token, loc, err)
	}()

	return token, nil
}
