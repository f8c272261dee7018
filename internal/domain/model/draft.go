package model

import "time"

// DeliveryFrequency captures which weekdays a subscription delivers on.
type DeliveryFrequency struct {
	Frequency string    `json:"frequency"`
	Days      []Weekday `json:"days"`
}

// SubscriptionDraft is the in-progress subscription a user builds before
// paying. It lives in the draft store until checkout settles or the user
// abandons the flow; the card-redirect path deliberately leaves it intact so
// an aborted external payment lands the user back on a usable draft.
type SubscriptionDraft struct {
	MealPlan          MealPlan          `json:"mealPlan"`
	DeliveryFrequency DeliveryFrequency `json:"deliveryFrequency"`
	StartDate         time.Time         `json:"startDate"`
}
