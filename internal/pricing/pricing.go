// Package pricing computes order totals from cart and promocode
// state. All functions are pure; callers recompute on every mutation
// instead of caching results.
package pricing

import "github.com/example/medovik/internal/models"

// Subtotal sums unit price times quantity over all cart items.
func Subtotal(cart models.Cart) float64 {
	var sum float64
	for _, item := range cart {
		sum += item.UnitPrice * float64(item.Quantity)
	}
	return sum
}

// Discount returns the absolute discount of an applied promocode,
// or 0 when none is applied.
func Discount(promo *models.PromocodeApplication) float64 {
	if promo == nil {
		return 0
	}
	return promo.Discount
}

// FinalTotal is subtotal minus discount, clamped at zero.
func FinalTotal(cart models.Cart, promo *models.PromocodeApplication) float64 {
	total := Subtotal(cart) - Discount(promo)
	if total < 0 {
		return 0
	}
	return total
}
