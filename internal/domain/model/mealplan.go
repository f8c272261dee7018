package model

import "time"

// MealClass labels which sitting of the day a meal belongs to.
type MealClass string

const (
	MealClassBreakfast MealClass = "breakfast"
	MealClassLunch     MealClass = "lunch"
	MealClassDinner    MealClass = "dinner"
	MealClassSnack     MealClass = "snack"
)

// Meal is a single planned delivery within a day. Field names and JSON tags
// mirror the delivery backend payloads; OrderSubTotal and TotalAmount are both
// supplied by the backend and are not reconciled against each other here.
type Meal struct {
	Status                  string    `json:"status"`
	MealContents            []string  `json:"mealContents"`
	MealClass               MealClass `json:"mealClass"`
	DeliveryTime            time.Time `json:"deliveryTime"`
	OrderSubTotal           float64   `json:"orderSubTotal"`
	TotalAmount             float64   `json:"totalAmount"`
	PartnerBusinessBranchID string    `json:"partnerBusinessBranchId"`
	NoteToRider             string    `json:"noteToRider,omitempty"`
	ImageURL                string    `json:"imageUrl,omitempty"`
}

// DayPlan groups the meals planned for one weekday.
type DayPlan struct {
	DayOfWeek Weekday `json:"dayOfWeek"`
	Meals     []Meal  `json:"meals"`
}

// MealPlan is a week of planned meals owned by the delivery backend.
// PlanDetails order is meaningful (Monday..Sunday) but not enforced upstream.
type MealPlan struct {
	ID                             string    `json:"id"`
	UserID                         string    `json:"userId"`
	PlanDetails                    []DayPlan `json:"planDetails"`
	ConsiderNutritionalPreferences bool      `json:"considerNutritionalPreferences"`
	CreatedAt                      time.Time `json:"createdAt"`
	UpdatedAt                      time.Time `json:"updatedAt"`
}

// Day returns the plan entry for the given weekday, if present.
func (p *MealPlan) Day(day Weekday) (*DayPlan, bool) {
	for i := range p.PlanDetails {
		if p.PlanDetails[i].DayOfWeek == day {
			return &p.PlanDetails[i], true
		}
	}
	return nil, false
}
