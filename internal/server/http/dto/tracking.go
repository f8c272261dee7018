package dto

import "github.com/conzooming/mealsub/internal/domain/model"

// TimelineResponse renders the fixed delivery progression for one order.
type TimelineResponse struct {
	Order        *model.Order `json:"order"`
	Step         int          `json:"step"`
	StepCount    int          `json:"stepCount"`
	Known        bool         `json:"known"`
	Delivered    bool         `json:"delivered"`
	PromptRating bool         `json:"promptRating"`
}

// TrackResponse confirms an order was registered for polling.
type TrackResponse struct {
	OrderReferenceCode string `json:"orderReferenceCode"`
	Status             string `json:"status"`
	Step               int    `json:"step"`
}
