package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bitmark-inc/schisto-api/score"
	"github.com/bitmark-inc/schisto-api/wizard"
)

// Metrics counts the usage of the assessment and chat services. A nil
// Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	assessmentsCreated prometheus.Counter
	locations          *prometheus.CounterVec
	results            *prometheus.CounterVec
	classifications    *prometheus.CounterVec
	prompts            *prometheus.CounterVec
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		assessmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schisto_assessments_created_total",
			Help: "Total count of assessment sessions created.",
		}),
		locations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schisto_location_results_total",
			Help: "Total count of location results by outcome.",
		}, []string{"status"}),
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schisto_assessment_results_total",
			Help: "Total count of risk results by tier.",
		}, []string{"tier"}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schisto_snail_classifications_total",
			Help: "Total count of snail classifications by risk.",
		}, []string{"risk"}),
		prompts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schisto_chat_prompts_total",
			Help: "Total count of chat prompts by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.assessmentsCreated,
		m.locations,
		m.results,
		m.classifications,
		m.prompts,
	)

	return m
}

// WatchSessions exports the number of live assessment sessions
func (m *Metrics) WatchSessions(sessions interface{ Len() int }) {
	if m == nil || sessions == nil {
		return
	}

	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "schisto_assessment_sessions",
		Help: "Number of live assessment sessions.",
	}, func() float64 {
		return float64(sessions.Len())
	}))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) AssessmentCreated() {
	if m == nil {
		return
	}
	m.assessmentsCreated.Inc()
}

func (m *Metrics) LocationResult(status wizard.GeoStatus) {
	if m == nil {
		return
	}
	m.locations.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) RiskResult(tier score.Tier) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(string(tier)).Inc()
}

func (m *Metrics) Prompt(outcome string) {
	if m == nil {
		return
	}
	m.prompts.WithLabelValues(outcome).Inc()
}

type countingClassifier struct {
	wizard.SnailClassifier
	counter *prometheus.CounterVec
}

func (c countingClassifier) Classify(ctx context.Context, image []byte, mimeType string) (wizard.Classification, error) {
	result, err := c.SnailClassifier.Classify(ctx, image, mimeType)
	if err != nil {
		c.counter.WithLabelValues("error").Inc()
	} else {
		c.counter.WithLabelValues(string(result.Risk)).Inc()
	}
	return result, err
}

// CountClassifications wraps a classifier to count its outcomes
func (m *Metrics) CountClassifications(classifier wizard.SnailClassifier) wizard.SnailClassifier {
	if m == nil || classifier == nil {
		return classifier
	}
	return countingClassifier{
		SnailClassifier: classifier,
		counter:         m.classifications,
	}
}
