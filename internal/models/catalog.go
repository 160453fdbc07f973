package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Category struct {
	BaseModel
	Name         string    `json:"name"`
	Slug         string    `gorm:"uniqueIndex" json:"slug"`
	ProductCount int       `json:"product_count"`
	Products     []Product `json:"products,omitempty"`
}

type Product struct {
	BaseModel
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Gallery     pq.StringArray `gorm:"type:text[]" json:"gallery"`
	BasePrice   float64        `json:"base_price"`
	CategoryID  *uuid.UUID     `gorm:"type:uuid" json:"category_id"`
	Category    *Category      `json:"category,omitempty"`
	Weights     []WeightPrice  `json:"weight_prices,omitempty"`
}

// WeightPrice is a purchasable weight variant of a product with its
// own price.
type WeightPrice struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Weight    string    `json:"weight"`
	Price     float64   `json:"price"`
}
