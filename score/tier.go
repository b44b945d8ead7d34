package score

type Tier string

const (
	Low      Tier = "low"
	Moderate Tier = "moderate"
	High     Tier = "high"
)

const (
	moderateThreshold = 20
	highThreshold     = 50
)

// TierOf buckets a score into a tier.
// Currently,
// Low:       0 ~ 19
// Moderate: 20 ~ 49
// High:     50 ~ 100
func TierOf(score int) Tier {
	switch {
	case score < moderateThreshold:
		return Low
	case score < highThreshold:
		return Moderate
	default:
		return High
	}
}

// CheckTierChange check if the tier of a score need to be changed
func CheckTierChange(oldScore, newScore int) bool {
	return TierOf(oldScore) != TierOf(newScore)
}
