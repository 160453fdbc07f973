package models

// PromocodeApplication is a successfully validated promocode. The
// Discount field is the absolute amount already resolved by the
// validation endpoint for the subtotal it was applied against.
type PromocodeApplication struct {
	Code          string  `json:"code"`
	DiscountType  string  `json:"discount_type"` // percent|fixed
	DiscountValue float64 `json:"discount_value"`
	Discount      float64 `json:"discount"`
}
