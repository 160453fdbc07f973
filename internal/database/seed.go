package database

import (
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/medovik/internal/models"
)

// Seed fills an empty catalog with the farm's starting assortment.
// Safe to call repeatedly: a non-empty catalog is left untouched.
func Seed(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	honey := models.Category{Name: "Мёд", Slug: "honey"}
	bee := models.Category{Name: "Пчелопродукты", Slug: "bee-products"}
	tinctures := models.Category{Name: "Настойки", Slug: "tinctures"}
	candles := models.Category{Name: "Свечи", Slug: "candles"}

	for _, cat := range []*models.Category{&honey, &bee, &tinctures, &candles} {
		if err := conn.Create(cat).Error; err != nil {
			return err
		}
	}

	honeyWeights := []models.WeightPrice{
		{Weight: "250гр", Price: 1200},
		{Weight: "500гр", Price: 2200},
		{Weight: "1кг", Price: 4000},
	}

	products := []models.Product{
		{
			Name:        "Мёд Разнотравье",
			Description: "Собран в экологически чистых районах с десятков видов луговых цветов.",
			Image:       "https://images.unsplash.com/photo-1587049352846-4a222e784d38?w=800",
			Gallery:     pq.StringArray{"https://images.unsplash.com/photo-1587049352846-4a222e784d38?w=800"},
			BasePrice:   1201,
			CategoryID:  &honey.ID,
			Weights:     cloneWeights(honeyWeights),
		},
		{
			Name:        "Мёд Гречишный",
			Description: "Тёмный мёд с насыщенным вкусом и характерным терпким послевкусием.",
			Image:       "https://images.unsplash.com/photo-1612257416648-ee7a6c533b4b?w=800",
			BasePrice:   1200,
			CategoryID:  &honey.ID,
			Weights:     cloneWeights(honeyWeights),
		},
		{
			Name:        "Пыльца цветочная",
			Description: "Кладезь витаминов и микроэлементов, укрепляет иммунитет.",
			Image:       "https://images.unsplash.com/photo-1626383046431-0b6e67c76f84?w=800",
			BasePrice:   1500,
			CategoryID:  &bee.ID,
			Weights: []models.WeightPrice{
				{Weight: "100гр", Price: 1500},
				{Weight: "250гр", Price: 3000},
			},
		},
		{
			Name:        "Маточное молочко",
			Description: "Самый ценный продукт пчеловодства, мощный иммуномодулятор.",
			Image:       "https://images.unsplash.com/photo-1587049352846-4a222e784d38?w=800",
			BasePrice:   8500,
			CategoryID:  &bee.ID,
		},
		{
			Name:        "Настойка прополиса",
			Description: "Спиртовая настойка прополиса для укрепления иммунитета.",
			Image:       "https://images.unsplash.com/photo-1505253758473-96b7015fcd40?w=800",
			BasePrice:   2500,
			CategoryID:  &tinctures.ID,
			Weights: []models.WeightPrice{
				{Weight: "200мл", Price: 2500},
			},
		},
		{
			Name:        "Свечи восковые",
			Description: "Натуральные свечи из пчелиного воска, горят ровно и долго.",
			Image:       "https://images.unsplash.com/photo-1524614644069-3517282706d8?w=800",
			BasePrice:   1500,
			CategoryID:  &candles.ID,
		},
	}

	for i := range products {
		if err := conn.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

func cloneWeights(src []models.WeightPrice) []models.WeightPrice {
	out := make([]models.WeightPrice, len(src))
	copy(out, src)
	return out
}
