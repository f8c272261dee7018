package model

// TrackingStep indexes the fixed linear delivery timeline shown to users.
type TrackingStep int

const (
	StepPartnerAccepted TrackingStep = iota
	StepPreparing
	StepRiderAccepted
	StepRiderAtPartner
	StepRiderPickedUp
	StepRiderAtCustomer
	StepDelivered
)

// TrackingStepCount is the number of steps on the timeline.
const TrackingStepCount = 7

// Backend orderNavigationStatus values.
const (
	StatusPartnerAccepted = "partnerAccepted"
	StatusPreparing       = "preparing"
	StatusRiderAccepted   = "riderAccepted"
	StatusRiderAtPartner  = "riderAtPartner"
	StatusRiderPickedUp   = "riderPickedUp"
	StatusRiderAtCustomer = "riderAtCustomer"
	StatusDelivered       = "delivered"
)

var trackingSteps = map[string]TrackingStep{
	StatusPartnerAccepted: StepPartnerAccepted,
	StatusPreparing:       StepPreparing,
	StatusRiderAccepted:   StepRiderAccepted,
	StatusRiderAtPartner:  StepRiderAtPartner,
	StatusRiderPickedUp:   StepRiderPickedUp,
	StatusRiderAtCustomer: StepRiderAtCustomer,
	StatusDelivered:       StepDelivered,
}

// StepForStatus maps a backend status onto a timeline step. Unrecognized
// statuses resolve to the first step with ok=false; callers keep rendering a
// sane timeline and decide separately whether to surface the raw status.
func StepForStatus(status string) (TrackingStep, bool) {
	step, ok := trackingSteps[status]
	if !ok {
		return StepPartnerAccepted, false
	}
	return step, true
}
