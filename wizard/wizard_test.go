package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/schisto-api/schema"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

// walk moves a fresh wizard from intro to the geo step with a denied location
func walk(t *testing.T, w *Wizard) {
	token, err := w.Start()
	assert.NoError(t, err)
	assert.True(t, w.CompleteLocation(token, schema.Location{}, ErrPermissionDenied))
	assert.Equal(t, StepGeo, w.Step())
}

func TestNewWizard(t *testing.T) {
	w := New()

	s := w.Snapshot()
	assert.Equal(t, StepIntro, s.Step)
	assert.Equal(t, 0, s.StepIndex)
	assert.Equal(t, GeoIdle, s.Geo.Status)
	assert.Nil(t, s.Result)
	assert.Equal(t, schema.NewAssessment(), s.Assessment)
}

func TestNextOnIntroIsInvalid(t *testing.T) {
	w := New()

	step, err := w.Next()
	assert.Equal(t, ErrInvalidTransition, err)
	assert.Equal(t, StepIntro, step)
}

func TestForwardTransitions(t *testing.T) {
	w := New()
	walk(t, w)

	for _, expected := range []Step{StepBehavior, StepClinical, StepSnail, StepResult} {
		step, err := w.Next()
		assert.NoError(t, err)
		assert.Equal(t, expected, step)
	}

	_, err := w.Next()
	assert.Equal(t, ErrInvalidTransition, err)
	assert.Equal(t, StepResult, w.Step())

	s := w.Snapshot()
	assert.Equal(t, 5, s.StepIndex)
	assert.NotNil(t, s.Result)
}

func TestBackTransitions(t *testing.T) {
	w := New()

	_, err := w.Back()
	assert.Equal(t, ErrInvalidTransition, err, "back on intro")

	walk(t, w)
	_, err = w.Back()
	assert.Equal(t, ErrInvalidTransition, err, "back on geo")

	w.Next()
	w.Next()
	w.Next()
	assert.Equal(t, StepSnail, w.Step())

	for _, expected := range []Step{StepClinical, StepBehavior, StepGeo} {
		step, err := w.Back()
		assert.NoError(t, err)
		assert.Equal(t, expected, step)
	}

	w.Next()
	w.Next()
	w.Next()
	w.Next()
	assert.Equal(t, StepResult, w.Step())
	_, err = w.Back()
	assert.Equal(t, ErrInvalidTransition, err, "back on result")
}

func TestApplyAnswers(t *testing.T) {
	w := New()

	occupation := schema.Fisherman
	err := w.Apply(Answers{
		StagnantWater:   boolPtr(true),
		Occupation:      &occupation,
		HasLatrine:      boolPtr(false),
		Age:             intPtr(42),
		HasBloodInUrine: boolPtr(true),
	})
	assert.NoError(t, err)

	a := w.Assessment()
	assert.True(t, a.StagnantWater)
	assert.Equal(t, schema.Fisherman, a.Occupation)
	assert.False(t, a.HasLatrine)
	assert.Equal(t, 42, a.Age)
	assert.True(t, a.HasBloodInUrine)
	assert.False(t, a.HasPainfulUrination)
}

func TestApplyInvalidAnswers(t *testing.T) {
	w := New()

	assert.Equal(t, ErrInvalidAge, w.Apply(Answers{Age: intPtr(0)}))
	assert.Equal(t, ErrInvalidAge, w.Apply(Answers{Age: intPtr(101)}))

	occupation := schema.Occupation("pilot")
	err := w.Apply(Answers{Occupation: &occupation, HasLatrine: boolPtr(false)})
	assert.Equal(t, ErrInvalidOccupation, err)

	assert.Equal(t, schema.NewAssessment(), w.Assessment(), "invalid answers must change nothing")
}

func TestToggleActivity(t *testing.T) {
	w := New()

	selected, err := w.ToggleActivity(schema.Swimming)
	assert.NoError(t, err)
	assert.True(t, selected)

	selected, err = w.ToggleActivity(schema.Swimming)
	assert.NoError(t, err)
	assert.False(t, selected)
	assert.Empty(t, w.Assessment().Activities)

	_, err = w.ToggleActivity(schema.WaterActivity("diving"))
	assert.Equal(t, ErrInvalidActivity, err)
}

func TestAssessmentIsACopy(t *testing.T) {
	w := New()
	w.ToggleActivity(schema.Fishing)

	a := w.Assessment()
	a.Activities[0] = schema.Playing
	a.Age = 99

	assert.Equal(t, []schema.WaterActivity{schema.Fishing}, w.Assessment().Activities)
	assert.Equal(t, schema.DefaultAge, w.Assessment().Age)
}

func TestResultAtAnyStep(t *testing.T) {
	w := New()
	w.Apply(Answers{HasBloodInUrine: boolPtr(true)})

	assert.Equal(t, 50, w.Result().Score)
	assert.Nil(t, w.Snapshot().Result, "snapshot carries the result only on the result step")
}

func TestRestartIsOnlyValidOnResult(t *testing.T) {
	w := New()
	assert.Equal(t, ErrInvalidTransition, w.Restart())

	walk(t, w)
	assert.Equal(t, ErrInvalidTransition, w.Restart())
}

func TestRestartIsPartial(t *testing.T) {
	w := New()

	token, err := w.Start()
	assert.NoError(t, err)
	assert.True(t, w.CompleteLocation(token, schema.Location{Latitude: -0.1, Longitude: 34.75}, nil))

	occupation := schema.Farmer
	w.Apply(Answers{
		StagnantWater:       boolPtr(true),
		Occupation:          &occupation,
		HasLatrine:          boolPtr(false),
		Age:                 intPtr(30),
		HasBloodInUrine:     boolPtr(true),
		HasPainfulUrination: boolPtr(true),
	})
	w.ToggleActivity(schema.Swimming)

	classify := w.BeginClassification()
	w.CompleteClassification(classify, Classification{Risk: schema.SnailRiskHigh, Analysis: "HIGH RISK"}, nil)

	for w.Step() != StepResult {
		_, err := w.Next()
		assert.NoError(t, err)
	}

	assert.NoError(t, w.Restart())

	s := w.Snapshot()
	assert.Equal(t, StepIntro, s.Step)
	assert.Equal(t, GeoIdle, s.Geo.Status)
	assert.Equal(t, SnailState{}, s.Snail)

	a := s.Assessment
	assert.Equal(t, "", a.DetectedZoneName)
	assert.False(t, a.NearWater)
	assert.False(t, a.HasBloodInUrine)
	assert.Equal(t, schema.SnailRiskNone, a.SnailRisk)

	// carried over
	assert.NotNil(t, a.Coordinates)
	assert.True(t, a.StagnantWater)
	assert.Equal(t, schema.Farmer, a.Occupation)
	assert.Equal(t, []schema.WaterActivity{schema.Swimming}, a.Activities)
	assert.False(t, a.HasLatrine)
	assert.Equal(t, 30, a.Age)
	assert.True(t, a.HasPainfulUrination)
}

func TestStepIndex(t *testing.T) {
	for i, s := range Steps {
		assert.Equal(t, i, s.Index())
	}
	assert.Equal(t, -1, Step("unknown").Index())
}
