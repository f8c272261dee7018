package dto

import "github.com/conzooming/mealsub/internal/domain/model"

// CheckoutSummaryResponse is the review page payload.
type CheckoutSummaryResponse struct {
	Draft         DraftResponse   `json:"draft"`
	Subtotal      float64         `json:"subtotal"`
	DeliveryFee   float64         `json:"deliveryFee"`
	ServiceFee    float64         `json:"serviceFee"`
	Total         float64         `json:"total"`
	WalletBalance float64         `json:"walletBalance"`
	Addresses     []model.Address `json:"addresses"`
}

// CheckoutRequest submits the review step for payment.
type CheckoutRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
	DeliveryAddress string `json:"deliveryAddress"`
}

// CheckoutResponse reports either a settled wallet payment or a card
// redirect, never both.
type CheckoutResponse struct {
	Settled            bool   `json:"settled"`
	OrderReferenceCode string `json:"orderReferenceCode,omitempty"`
	AuthorizationURL   string `json:"authorizationUrl,omitempty"`
}

// PaymentErrorResponse carries the upstream failure text for the retry modal.
type PaymentErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
