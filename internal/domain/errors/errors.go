package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrNoMealPlans           = errors.New("no meal plans yet")
	ErrNoHealthProfile       = errors.New("no nutritional preference profile yet")
	ErrNoMatchingDays        = errors.New("no plan days match the selected delivery days")
	ErrDraftSchema           = errors.New("subscription draft schema mismatch")
	ErrPaymentMethodRequired = errors.New("payment method not selected")
	ErrAddressRequired       = errors.New("delivery address not selected")
	ErrInsufficientBalance   = errors.New("insufficient wallet balance")
	ErrUnknownDay            = errors.New("unknown delivery day")
	ErrInvalidAmount         = errors.New("invalid amount")
)

// ProfileIncompleteError redirects the meal-plan flow to preference creation,
// carrying the path the flow should resume at afterwards.
type ProfileIncompleteError struct {
	ReturnTo string
}

func (e ProfileIncompleteError) Error() string {
	return fmt.Sprintf("nutritional profile incomplete, resume at %s", e.ReturnTo)
}

// PaymentFailedError is any checkout failure that is not an insufficient
// balance; Message holds the upstream text verbatim for the retry modal.
type PaymentFailedError struct {
	Message string
}

func (e PaymentFailedError) Error() string {
	return fmt.Sprintf("payment failed: %s", e.Message)
}
