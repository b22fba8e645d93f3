package domain

import "time"

// Order is the snapshot produced by a successful checkout submission. Orders
// are logged and handed back to the caller; nothing persists them.
type Order struct {
	ID             string         `json:"id"`
	Items          []CartItem     `json:"items"`
	Subtotal       int64          `json:"subtotal"`
	ShippingCost   int64          `json:"shippingCost"`
	Total          int64          `json:"total"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
	Customer       CheckoutData   `json:"customer"`
	User           *User          `json:"user,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
}
