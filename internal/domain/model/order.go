package model

import "time"

// OrderItem is a line of a placed order as reported by the backend.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Vendor identifies the partner business fulfilling an order.
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Order is the read model of a backend-owned order. Only the fields the
// storefront ever displays are carried.
type Order struct {
	OrderReferenceCode    string      `json:"orderReferenceCode"`
	OrderNavigationStatus string      `json:"orderNavigationStatus"`
	TotalAmountPaid       float64     `json:"totalAmountPaid"`
	CreatedAt             time.Time   `json:"createdAt"`
	DeliveryAddress       string      `json:"deliveryAddress"`
	Items                 []OrderItem `json:"items"`
	Vendor                Vendor      `json:"vendor"`
	PaymentStatus         string      `json:"paymentStatus"`
}

// TrackedOrder is a locally registered order the background poller keeps
// refreshed from the delivery backend.
type TrackedOrder struct {
	ID             int64
	UserID         string
	OrderRef       string
	Status         string
	Step           int
	DeliveredAt    *time.Time
	RatingPrompted bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
