package domain

// CartItem is a product plus the quantity held in the cart. A cart holds at
// most one item per product id.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is the item price multiplied by its quantity.
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}
