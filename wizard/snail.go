package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/bitmark-inc/schisto-api/schema"
)

const SnailPrompt = `Analyze this image of a snail. 1. Identify if it looks like a Biomphalaria or Bulinus species (vectors for Schistosomiasis) or a generic garden snail. 2. If it is a vector, state "HIGH RISK". If harmless, state "LOW RISK". 3. Provide a 1 sentence explanation.`

// FallbackAnalysis is shown when a snail photo could not be classified
const FallbackAnalysis = "Could not identify. Please try again."

var ErrEmptyImage = fmt.Errorf("empty image")

var vectorKeywords = []string{"high risk", "bulinus", "biomphalaria"}

// SnailState describes the classification of the latest snail photo
type SnailState struct {
	Pending  bool   `json:"pending"`
	Token    Token  `json:"token,omitempty"`
	Analysis string `json:"analysis,omitempty"`
}

type Classification struct {
	Risk     schema.SnailRisk `json:"risk"`
	Analysis string           `json:"analysis"`
}

// SnailClassifier classifies the photo of a snail
type SnailClassifier interface {
	Classify(ctx context.Context, image []byte, mimeType string) (Classification, error)
}

// Describer returns a free text description of an image for a prompt
type Describer interface {
	Describe(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
}

// ParseSnailRisk maps a free text analysis to a snail risk
func ParseSnailRisk(text string) schema.SnailRisk {
	lower := strings.ToLower(text)
	for _, k := range vectorKeywords {
		if strings.Contains(lower, k) {
			return schema.SnailRiskHigh
		}
	}
	return schema.SnailRiskNone
}

// TextClassifier asks a describer about the photo and maps its answer with
// ParseSnailRisk
type TextClassifier struct {
	describer Describer
}

func NewTextClassifier(d Describer) *TextClassifier {
	return &TextClassifier{describer: d}
}

func (c *TextClassifier) Classify(ctx context.Context, image []byte, mimeType string) (Classification, error) {
	if len(image) == 0 {
		return Classification{}, ErrEmptyImage
	}

	text, err := c.describer.Describe(ctx, image, mimeType, SnailPrompt)
	if err != nil {
		return Classification{}, err
	}

	return Classification{
		Risk:     ParseSnailRisk(text),
		Analysis: text,
	}, nil
}

// BeginClassification marks a new photo as being analysed. Any earlier
// classification still in flight is superseded.
func (w *Wizard) BeginClassification() Token {
	w.mu.Lock()
	defer w.mu.Unlock()

	token := w.issueToken()
	w.classifyToken = token
	w.snail = SnailState{Pending: true, Token: token}

	return token
}

// CompleteClassification applies the outcome of a classification. On
// failure the fallback analysis is shown and the snail risk is kept. It
// returns false if the token is stale.
func (w *Wizard) CompleteClassification(token Token, c Classification, err error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if token == 0 || token != w.classifyToken || !w.snail.Pending {
		log.WithField("token", token).Warn("drop stale classification result")
		return false
	}

	w.snail.Pending = false

	if err != nil {
		log.WithError(err).Warn("snail classification failed")
		w.snail.Analysis = FallbackAnalysis
		return true
	}

	w.record.SnailRisk = c.Risk
	w.snail.Analysis = c.Analysis

	log.WithField("risk", c.Risk).Info("snail classified")
	return true
}

// Classify starts the classification of a snail photo in the background
func (w *Wizard) Classify(ctx context.Context, classifier SnailClassifier, image []byte, mimeType string) Token {
	token := w.BeginClassification()

	if classifier == nil {
		w.CompleteClassification(token, Classification{}, fmt.Errorf("no snail classifier"))
		return token
	}

	go func() {
		c, err := classifier.Classify(ctx, image, mimeType)
		w.CompleteClassification(token, c, err)
	}()

	return token
}
