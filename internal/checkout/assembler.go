package checkout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/example/medovik/internal/models"
	"github.com/example/medovik/internal/pricing"
)

// BuildOrder assembles the payload for the external persistence
// endpoint from the cart, customer fields and the applied promocode.
func BuildOrder(customer models.CustomerInfo, cart models.Cart, promo *models.PromocodeApplication) models.Order {
	lines := make([]models.OrderLine, 0, len(cart))
	for _, item := range cart {
		lines = append(lines, models.OrderLine{
			Name:     item.Name,
			Weight:   item.Weight,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
		})
	}

	order := models.Order{
		CustomerName:  customer.Name,
		CustomerPhone: customer.PhoneDisplay,
		Items:         lines,
		Subtotal:      pricing.Subtotal(cart),
		Discount:      pricing.Discount(promo),
		Total:         pricing.FinalTotal(cart, promo),
	}
	if promo != nil {
		code := promo.Code
		order.Promocode = &code
	}
	return order
}

// SummaryText renders the human-readable order summary embedded in
// the messenger deep link. Field order and line shapes are a
// compatibility contract with the merchant side; change with care.
func SummaryText(customer models.CustomerInfo, cart models.Cart, promo *models.PromocodeApplication) string {
	var b strings.Builder

	b.WriteString("🐝 Новый заказ от Ферма Медовик!\n\n")
	b.WriteString(fmt.Sprintf("👤 Имя: %s\n", customer.Name))
	b.WriteString(fmt.Sprintf("📞 Телефон: %s\n\n", customer.PhoneDisplay))
	b.WriteString("📦 Заказ:\n")

	for i, item := range cart {
		b.WriteString(fmt.Sprintf("%d. %s", i+1, item.Name))
		if item.Weight != "" {
			b.WriteString(fmt.Sprintf(" (%s)", item.Weight))
		}
		b.WriteString(fmt.Sprintf(" - %d шт. x %s ₸ = %s ₸\n",
			item.Quantity, formatAmount(item.UnitPrice), formatAmount(item.LineTotal())))
	}

	subtotal := pricing.Subtotal(cart)
	if promo != nil {
		b.WriteString(fmt.Sprintf("\n💰 Сумма: %s ₸\n", formatAmount(subtotal)))
		b.WriteString(fmt.Sprintf("🏷 Промокод %s: -%s ₸\n", promo.Code, formatAmount(promo.Discount)))
		b.WriteString(fmt.Sprintf("💰 Итого: %s ₸", formatAmount(pricing.FinalTotal(cart, promo))))
	} else {
		b.WriteString(fmt.Sprintf("\n💰 Итого: %s ₸", formatAmount(subtotal)))
	}

	return b.String()
}

// formatAmount prints whole-tenge amounts without a decimal tail.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
