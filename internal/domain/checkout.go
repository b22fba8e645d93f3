package domain

// DeliveryMethod selects how an order reaches the customer.
type DeliveryMethod string

const (
	DeliveryPickup DeliveryMethod = "pickup"
	DeliveryBranch DeliveryMethod = "branch-delivery"
	DeliveryHome   DeliveryMethod = "home-delivery"
)

// Valid reports whether the delivery method is part of the fixed enumeration.
func (m DeliveryMethod) Valid() bool {
	switch m {
	case DeliveryPickup, DeliveryBranch, DeliveryHome:
		return true
	}
	return false
}

// CheckoutData collects everything the checkout flow asks of the customer.
// It survives step navigation and is persisted until the flow is reset.
type CheckoutData struct {
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	RUT            string         `json:"rut"`
	Region         string         `json:"region"`
	Commune        string         `json:"commune"`
	Address        string         `json:"address"`
	Message        string         `json:"message,omitempty"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod"`
}

// ContactComplete reports whether every required contact field is present.
// Presence only; RUT, email and phone formats are not validated here.
func (d CheckoutData) ContactComplete() bool {
	return d.Name != "" && d.RUT != "" && d.Email != "" && d.Phone != ""
}

// AddressComplete reports whether the shipping address fields are present.
func (d CheckoutData) AddressComplete() bool {
	return d.Region != "" && d.Commune != "" && d.Address != ""
}
