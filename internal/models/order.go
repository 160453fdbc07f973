package models

// Order is the payload sent to the external persistence endpoint.
// Built once at submission time; the service does not keep it around.
type Order struct {
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	Items         []OrderLine `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Discount      float64     `json:"discount"`
	Total         float64     `json:"total"`
	Promocode     *string     `json:"promocode"`
}

// OrderLine is a single purchased position.
type OrderLine struct {
	Name     string  `json:"name"`
	Weight   string  `json:"weight,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
