package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/medovik/internal/cartstore"
	"github.com/example/medovik/internal/middleware"
	"github.com/example/medovik/internal/models"
	"github.com/example/medovik/internal/pricing"
	"github.com/example/medovik/internal/promo"
)

// CartHandler manages the customer's cart.
type CartHandler struct {
	db     *gorm.DB
	carts  *cartstore.Store
	promos *promo.Manager
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB, carts *cartstore.Store, promos *promo.Manager) *CartHandler {
	return &CartHandler{db: db, carts: carts, promos: promos}
}

// cartPayload is the cart view with totals recomputed on every read.
func (h *CartHandler) cartPayload(c *fiber.Ctx) fiber.Map {
	session := middleware.GetCartSession(c)
	cart := h.carts.Items(c.Context(), session)
	applied := h.promos.Applied(session)

	payload := fiber.Map{
		"items":    cart,
		"subtotal": pricing.Subtotal(cart),
		"discount": pricing.Discount(applied),
		"total":    pricing.FinalTotal(cart, applied),
	}
	if applied != nil {
		payload["promocode"] = applied
	}
	return payload
}

// GetCart returns the session's cart with totals.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.cartPayload(c)})
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Weight    string `json:"weight"`
}

// AddItem puts a product into the cart, resolving the unit price from
// the chosen weight variant or the base price at add time.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
	}

	var product models.Product
	if err := h.db.Preload("Weights").First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var variant *models.WeightPrice
	if req.Weight != "" {
		for i := range product.Weights {
			if product.Weights[i].Weight == req.Weight {
				variant = &product.Weights[i]
				break
			}
		}
		if variant == nil {
			return fiber.NewError(fiber.StatusNotFound, "weight variant not found")
		}
	}

	session := middleware.GetCartSession(c)
	h.carts.Add(c.Context(), session, product, variant)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Товар добавлен в корзину",
		"data":    h.cartPayload(c),
	})
}

type updateItemRequest struct {
	Delta int `json:"delta"`
}

// UpdateItem changes an item's quantity by a delta; dropping to zero
// or below removes the line.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	session := middleware.GetCartSession(c)
	h.carts.UpdateQuantity(c.Context(), session, c.Params("id"), req.Delta)

	return c.JSON(fiber.Map{"success": true, "data": h.cartPayload(c)})
}

// RemoveItem deletes a cart line.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	session := middleware.GetCartSession(c)
	h.carts.Remove(c.Context(), session, c.Params("id"))

	return c.JSON(fiber.Map{"success": true, "data": h.cartPayload(c)})
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	session := middleware.GetCartSession(c)
	h.carts.Clear(c.Context(), session)

	return c.JSON(fiber.Map{"success": true, "data": h.cartPayload(c)})
}
