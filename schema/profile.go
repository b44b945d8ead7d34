package schema

import "time"

const (
	PlanMonthly  = "monthly"
	PlanBiweekly = "biweekly"
)

// Profile is the usage record of a signed-in user. The id is the subject
// of the token issued by the authentication backend.
type Profile struct {
	ID               string    `json:"id" gorm:"primary_key"`
	Email            string    `json:"email"`
	PromptCount      int       `json:"prompt_count" gorm:"not null"`
	IsPremium        bool      `json:"is_premium" gorm:"not null"`
	SubscriptionPlan *string   `json:"subscription_plan,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ValidPlan reports whether a subscription plan can be purchased
func ValidPlan(plan string) bool {
	return plan == PlanMonthly || plan == PlanBiweekly
}

// CanPrompt reports whether the profile still has prompts left under a
// free limit. Premium profiles are never limited.
func (p Profile) CanPrompt(freeLimit int) bool {
	return p.IsPremium || p.PromptCount < freeLimit
}
