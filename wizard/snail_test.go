package wizard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/schisto-api/schema"
)

type fakeDescriber struct {
	text   string
	err    error
	prompt string
	mime   string
}

func (d *fakeDescriber) Describe(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	d.prompt = prompt
	d.mime = mimeType
	return d.text, d.err
}

type fixedClassifier struct {
	c   Classification
	err error
}

func (f fixedClassifier) Classify(ctx context.Context, image []byte, mimeType string) (Classification, error) {
	return f.c, f.err
}

func TestParseSnailRisk(t *testing.T) {
	cases := []struct {
		text     string
		expected schema.SnailRisk
	}{
		{"HIGH RISK. This looks like a Biomphalaria snail.", schema.SnailRiskHigh},
		{"high risk", schema.SnailRiskHigh},
		{"A bulinus species, which carries the parasite.", schema.SnailRiskHigh},
		{"Looks like BIOMPHALARIA.", schema.SnailRiskHigh},
		{"LOW RISK. A generic garden snail.", schema.SnailRiskNone},
		{"", schema.SnailRiskNone},
		{"HIGH-RISK vector", schema.SnailRiskNone},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, ParseSnailRisk(c.text), c.text)
	}
}

func TestTextClassifier(t *testing.T) {
	d := &fakeDescriber{text: "HIGH RISK. Bulinus species."}
	c := NewTextClassifier(d)

	result, err := c.Classify(context.Background(), []byte{0xff, 0xd8}, "image/jpeg")
	assert.NoError(t, err)
	assert.Equal(t, schema.SnailRiskHigh, result.Risk)
	assert.Equal(t, "HIGH RISK. Bulinus species.", result.Analysis)
	assert.Equal(t, SnailPrompt, d.prompt)
	assert.Equal(t, "image/jpeg", d.mime)
}

func TestTextClassifierErrors(t *testing.T) {
	c := NewTextClassifier(&fakeDescriber{err: fmt.Errorf("quota exceeded")})

	_, err := c.Classify(context.Background(), []byte{1}, "image/png")
	assert.EqualError(t, err, "quota exceeded")

	_, err = c.Classify(context.Background(), nil, "image/png")
	assert.Equal(t, ErrEmptyImage, err)
}

func TestClassificationSetsRisk(t *testing.T) {
	w := New()

	token := w.BeginClassification()
	assert.True(t, w.Snapshot().Snail.Pending)

	assert.True(t, w.CompleteClassification(token, Classification{Risk: schema.SnailRiskHigh, Analysis: "HIGH RISK"}, nil))

	s := w.Snapshot()
	assert.False(t, s.Snail.Pending)
	assert.Equal(t, "HIGH RISK", s.Snail.Analysis)
	assert.Equal(t, schema.SnailRiskHigh, s.Assessment.SnailRisk)
}

func TestClassificationFailureKeepsRisk(t *testing.T) {
	w := New()

	token := w.BeginClassification()
	w.CompleteClassification(token, Classification{Risk: schema.SnailRiskHigh, Analysis: "HIGH RISK"}, nil)

	token = w.BeginClassification()
	assert.True(t, w.CompleteClassification(token, Classification{}, fmt.Errorf("network")))

	s := w.Snapshot()
	assert.Equal(t, FallbackAnalysis, s.Snail.Analysis)
	assert.Equal(t, schema.SnailRiskHigh, s.Assessment.SnailRisk)
}

func TestNewerClassificationSupersedes(t *testing.T) {
	w := New()

	first := w.BeginClassification()
	second := w.BeginClassification()

	assert.False(t, w.CompleteClassification(first, Classification{Risk: schema.SnailRiskHigh}, nil))
	assert.Equal(t, schema.SnailRiskNone, w.Assessment().SnailRisk)

	assert.True(t, w.CompleteClassification(second, Classification{Risk: schema.SnailRiskNone, Analysis: "LOW RISK"}, nil))
	assert.Equal(t, "LOW RISK", w.Snapshot().Snail.Analysis)
}

func TestTokensAreSharedAcrossRequests(t *testing.T) {
	w := New()

	locate, _ := w.Start()
	classify := w.BeginClassification()
	assert.NotEqual(t, locate, classify)

	assert.False(t, w.CompleteClassification(locate, Classification{Risk: schema.SnailRiskHigh}, nil))
	assert.False(t, w.CompleteLocation(classify, kisumu, nil))
}

func TestClassify(t *testing.T) {
	w := New()

	w.Classify(context.Background(), fixedClassifier{
		c: Classification{Risk: schema.SnailRiskHigh, Analysis: "HIGH RISK"},
	}, []byte{1}, "image/jpeg")

	assert.Eventually(t, func() bool {
		return w.Assessment().SnailRisk == schema.SnailRiskHigh
	}, time.Second, 5*time.Millisecond)
	assert.False(t, w.Snapshot().Snail.Pending)
}

func TestClassifyWithoutClassifier(t *testing.T) {
	w := New()

	w.Classify(context.Background(), nil, []byte{1}, "image/jpeg")

	s := w.Snapshot()
	assert.False(t, s.Snail.Pending)
	assert.Equal(t, FallbackAnalysis, s.Snail.Analysis)
}

func TestClassificationAfterRestartIsIgnored(t *testing.T) {
	w := New()
	walk(t, w)

	token := w.BeginClassification()
	for w.Step() != StepResult {
		w.Next()
	}
	assert.NoError(t, w.Restart())

	assert.False(t, w.CompleteClassification(token, Classification{Risk: schema.SnailRiskHigh}, nil))
	assert.Equal(t, schema.SnailRiskNone, w.Assessment().SnailRisk)
}
