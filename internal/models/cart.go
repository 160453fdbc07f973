package models

// CartItem is a product+variant selection in a customer's cart. The
// ID glues the product id to the chosen weight variant so the same
// product in two weights stays two separate lines.
type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Weight    string  `json:"weight,omitempty"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Cart is an ordered list of items; insertion order is display order.
type Cart []CartItem

// LineTotal returns the item's price multiplied by quantity.
func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
