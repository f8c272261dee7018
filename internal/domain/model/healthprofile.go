package model

import "time"

// HealthProfile is the nutritional-preference profile stored by the delivery
// backend and consulted when composing a meal plan.
type HealthProfile struct {
	UserID             string    `json:"userId"`
	Allergies          []string  `json:"allergies"`
	DietaryPreferences []string  `json:"dietaryPreferences"`
	HealthGoals        []string  `json:"healthGoals"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Complete reports whether the profile has enough data to influence plan
// composition. An incomplete profile forces the flow through preference
// creation before a plan can be generated from it.
func (p *HealthProfile) Complete() bool {
	return p != nil && len(p.DietaryPreferences) > 0 && len(p.HealthGoals) > 0
}
