package model

// Address belongs to the account profile on the delivery backend; it is read
// through the gateway and mirrored only for the duration of a checkout.
type Address struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	FullAddress string `json:"fullAddress"`
	IsDefault   bool   `json:"isDefault"`
}
