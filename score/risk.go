package score

import (
	"fmt"

	"github.com/bitmark-inc/schisto-api/schema"
)

// MaxScore is the upper bound of a risk score
const MaxScore = 100

type FactorType string

const (
	Hematuria        FactorType = "hematuria"
	PainfulUrination FactorType = "painful_urination"
	NearWater        FactorType = "near_water"
	StagnantWater    FactorType = "stagnant_water"
	WaterContact     FactorType = "water_contact"
	Occupational     FactorType = "occupation"
	NoSanitation     FactorType = "no_sanitation"
	VectorSnail      FactorType = "vector_snail"
)

// Weights of each risk factor. Clinical symptoms carry the highest weight.
var Weights = map[FactorType]int{
	Hematuria:        50,
	PainfulUrination: 20,
	NearWater:        20,
	StagnantWater:    10,
	WaterContact:     20,
	Occupational:     15,
	NoSanitation:     10,
	VectorSnail:      25,
}

// Factor is a triggered risk factor and its explanation
type Factor struct {
	ID     FactorType `json:"id"`
	Weight int        `json:"weight"`
	Reason string     `json:"reason"`

	// Zone is the detected hotspot name, only set for NearWater
	Zone string `json:"zone,omitempty"`
}

// RiskResult is the outcome of a risk evaluation. Reasons follow the
// evaluation order of the factors.
type RiskResult struct {
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
	Factors []Factor `json:"factors"`
}

// Risk evaluates the weighted risk of an assessment. It has no side effects
// and gives the same result for the same assessment.
func Risk(a schema.Assessment) RiskResult {
	r := RiskResult{
		Reasons: []string{},
		Factors: []Factor{},
	}

	add := func(f Factor) {
		f.Weight = Weights[f.ID]
		r.Score += f.Weight
		r.Reasons = append(r.Reasons, f.Reason)
		r.Factors = append(r.Factors, f)
	}

	// clinical
	if a.HasBloodInUrine {
		add(Factor{ID: Hematuria, Reason: "Hematuria (Blood in urine) is a critical symptom."})
	}
	if a.HasPainfulUrination {
		add(Factor{ID: PainfulUrination, Reason: "Painful urination suggests infection."})
	}

	// environmental
	if a.NearWater {
		if a.DetectedZoneName != "" {
			add(Factor{
				ID:     NearWater,
				Reason: fmt.Sprintf("Located near %s (High Risk Zone).", a.DetectedZoneName),
				Zone:   a.DetectedZoneName,
			})
		} else {
			add(Factor{ID: NearWater, Reason: "Proximity to water body detected."})
		}

		if a.StagnantWater {
			add(Factor{ID: StagnantWater, Reason: "Stagnant water supports snail breeding."})
		}
	}

	// behavioral
	if a.HasActivity(schema.Swimming) || a.HasActivity(schema.Fishing) {
		add(Factor{ID: WaterContact, Reason: "Direct water contact activities are high risk."})
	}
	if a.Occupation == schema.Farmer || a.Occupation == schema.Fisherman {
		add(Factor{ID: Occupational, Reason: "Occupational hazard detected."})
	}
	if !a.HasLatrine {
		add(Factor{ID: NoSanitation, Reason: "Lack of sanitation contributes to transmission cycles."})
	}

	// snail
	if a.SnailRisk == schema.SnailRiskHigh {
		add(Factor{ID: VectorSnail, Reason: "Presence of vector snails confirmed."})
	}

	if r.Score > MaxScore {
		r.Score = MaxScore
	}

	return r
}
