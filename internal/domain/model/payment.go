package model

// Payment mode values expected by the delivery backend.
const (
	PaymentModeCard   = 1
	PaymentModeWallet = 2
)

// PaymentMethod is a client-side choice, never persisted; it is selected anew
// for every checkout attempt.
type PaymentMethod struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

var (
	PaymentMethodWallet = PaymentMethod{ID: "conzooming-wallet", Type: "wallet"}
	PaymentMethodCard   = PaymentMethod{ID: "paystack", Type: "card"}
)

// Mode maps the method onto the backend's numeric payment mode, 0 if unknown.
func (m PaymentMethod) Mode() int {
	switch m.ID {
	case PaymentMethodWallet.ID:
		return PaymentModeWallet
	case PaymentMethodCard.ID:
		return PaymentModeCard
	}
	return 0
}

// PaymentMethodByID resolves one of the two supported payment methods.
func PaymentMethodByID(id string) (PaymentMethod, bool) {
	switch id {
	case PaymentMethodWallet.ID:
		return PaymentMethodWallet, true
	case PaymentMethodCard.ID:
		return PaymentMethodCard, true
	}
	return PaymentMethod{}, false
}
