package wizard

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bitmark-inc/schisto-api/schema"
	"github.com/bitmark-inc/schisto-api/score"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "wizard")
}

type Step string

const (
	StepIntro    Step = "intro"
	StepGeo      Step = "geo"
	StepBehavior Step = "behavior"
	StepClinical Step = "clinical"
	StepSnail    Step = "snail"
	StepResult   Step = "result"
)

// Steps lists the wizard steps in order
var Steps = []Step{StepIntro, StepGeo, StepBehavior, StepClinical, StepSnail, StepResult}

// Index returns the position of a step, or -1 for an unknown step
func (s Step) Index() int {
	for i, step := range Steps {
		if s == step {
			return i
		}
	}
	return -1
}

var nextSteps = map[Step]Step{
	StepGeo:      StepBehavior,
	StepBehavior: StepClinical,
	StepClinical: StepSnail,
	StepSnail:    StepResult,
}

var previousSteps = map[Step]Step{
	StepBehavior: StepGeo,
	StepClinical: StepBehavior,
	StepSnail:    StepClinical,
}

var (
	ErrInvalidTransition = fmt.Errorf("invalid step transition")
	ErrInvalidAge        = fmt.Errorf("age must be between %d and %d", schema.MinAge, schema.MaxAge)
	ErrInvalidOccupation = fmt.Errorf("unknown occupation")
	ErrInvalidActivity   = fmt.Errorf("unknown water contact activity")
)

// Token identifies an asynchronous request issued by a wizard. A completion
// is applied only if its token is still the active one.
type Token uint64

// Answers is a partial update of the assessment. Nil fields are left untouched.
type Answers struct {
	NearWater           *bool              `json:"near_water"`
	StagnantWater       *bool              `json:"stagnant_water"`
	Occupation          *schema.Occupation `json:"occupation"`
	HasLatrine          *bool              `json:"latrine_access"`
	Age                 *int               `json:"age"`
	HasBloodInUrine     *bool              `json:"blood_in_urine"`
	HasPainfulUrination *bool              `json:"painful_urination"`
}

func (a Answers) validate() error {
	if a.Age != nil && (*a.Age < schema.MinAge || *a.Age > schema.MaxAge) {
		return ErrInvalidAge
	}
	if a.Occupation != nil && !a.Occupation.Valid() {
		return ErrInvalidOccupation
	}
	return nil
}

// State is a read-only snapshot of a wizard
type State struct {
	Step       Step              `json:"step"`
	StepIndex  int               `json:"step_index"`
	Geo        GeoState          `json:"geo"`
	Assessment schema.Assessment `json:"assessment"`
	Snail      SnailState        `json:"snail"`
	Result     *score.RiskResult `json:"result,omitempty"`
}

// Option configures a wizard
type Option func(*Wizard)

// WithZones replaces the hotspot zones used to match a location fix
func WithZones(zones []schema.HotspotZone) Option {
	return func(w *Wizard) {
		w.zones = zones
	}
}

// WithPacingDelay delays the move from intro to geo after a location is found
func WithPacingDelay(d time.Duration) Option {
	return func(w *Wizard) {
		w.pacingDelay = d
	}
}

// Wizard walks a user through the risk assessment steps. It is safe to use
// from multiple goroutines.
type Wizard struct {
	mu sync.Mutex

	step   Step
	record schema.Assessment
	zones  []schema.HotspotZone

	geo         GeoState
	pacingDelay time.Duration

	snail SnailState

	// the last issued token, shared by location and classification requests
	lastToken     Token
	locateToken   Token
	classifyToken Token

	lastScore *int
}

// New returns a wizard at the intro step with a default assessment
func New(opts ...Option) *Wizard {
	w := &Wizard{
		step:   StepIntro,
		record: schema.NewAssessment(),
		zones:  schema.KenyanHotspotZones,
		geo:    GeoState{Status: GeoIdle},
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *Wizard) issueToken() Token {
	w.lastToken++
	return w.lastToken
}

// Step returns the current step
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Next moves forward to the following data entry step. Entering the result
// step evaluates the assessment.
func (w *Wizard) Next() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, ok := nextSteps[w.step]
	if !ok {
		return w.step, ErrInvalidTransition
	}
	w.step = next

	if next == StepResult {
		r := score.Risk(w.record)
		if w.lastScore != nil && score.CheckTierChange(*w.lastScore, r.Score) {
			log.WithFields(logrus.Fields{
				"from": score.TierOf(*w.lastScore),
				"to":   score.TierOf(r.Score),
			}).Info("risk tier changed")
		}
		w.lastScore = &r.Score
	}

	log.WithField("step", w.step).Debug("step forward")
	return w.step, nil
}

// Back returns to the previous data entry step
func (w *Wizard) Back() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	prev, ok := previousSteps[w.step]
	if !ok {
		return w.step, ErrInvalidTransition
	}
	w.step = prev

	log.WithField("step", w.step).Debug("step backward")
	return w.step, nil
}

// Restart goes back to intro from the result step. Only the detected zone,
// near_water, blood_in_urine and snail_risk are cleared; the other answers
// carry over to the next run. Pending requests are dropped.
func (w *Wizard) Restart() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepResult {
		return ErrInvalidTransition
	}

	w.step = StepIntro
	w.record.DetectedZoneName = ""
	w.record.NearWater = false
	w.record.HasBloodInUrine = false
	w.record.SnailRisk = schema.SnailRiskNone

	w.locateToken = 0
	w.classifyToken = 0
	w.geo = GeoState{Status: GeoIdle}
	w.snail = SnailState{}

	log.Debug("restart")
	return nil
}

// Apply updates the assessment with the given answers. Nothing is changed
// if any answer is invalid.
func (w *Wizard) Apply(a Answers) error {
	if err := a.validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if a.NearWater != nil {
		w.record.NearWater = *a.NearWater
	}
	if a.StagnantWater != nil {
		w.record.StagnantWater = *a.StagnantWater
	}
	if a.Occupation != nil {
		w.record.Occupation = *a.Occupation
	}
	if a.HasLatrine != nil {
		w.record.HasLatrine = *a.HasLatrine
	}
	if a.Age != nil {
		w.record.Age = *a.Age
	}
	if a.HasBloodInUrine != nil {
		w.record.HasBloodInUrine = *a.HasBloodInUrine
	}
	if a.HasPainfulUrination != nil {
		w.record.HasPainfulUrination = *a.HasPainfulUrination
	}

	return nil
}

// ToggleActivity selects or deselects a water contact activity. It returns
// whether the activity is selected afterwards.
func (w *Wizard) ToggleActivity(activity schema.WaterActivity) (bool, error) {
	if !activity.Valid() {
		return false, ErrInvalidActivity
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return w.record.ToggleActivity(activity), nil
}

// Assessment returns a copy of the current assessment
func (w *Wizard) Assessment() schema.Assessment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.record.Clone()
}

// Result evaluates the current assessment. It can be called at any step.
func (w *Wizard) Result() score.RiskResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return score.Risk(w.record)
}

// Snapshot returns the whole state of the wizard. The result is only
// included on the result step.
func (w *Wizard) Snapshot() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := State{
		Step:       w.step,
		StepIndex:  w.step.Index(),
		Geo:        w.geo,
		Assessment: w.record.Clone(),
		Snail:      w.snail,
	}

	if w.geo.Location != nil {
		loc := *w.geo.Location
		s.Geo.Location = &loc
	}

	if w.step == StepResult {
		r := score.Risk(w.record)
		s.Result = &r
	}

	return s
}
