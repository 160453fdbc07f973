package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/medovik/internal/cartstore"
	"github.com/example/medovik/internal/middleware"
	"github.com/example/medovik/internal/pricing"
	"github.com/example/medovik/internal/promo"
	"github.com/example/medovik/internal/services"
)

// PromocodeHandler manages promocode application for a cart session.
type PromocodeHandler struct {
	carts  *cartstore.Store
	promos *promo.Manager
}

// NewPromocodeHandler constructs PromocodeHandler.
func NewPromocodeHandler(carts *cartstore.Store, promos *promo.Manager) *PromocodeHandler {
	return &PromocodeHandler{carts: carts, promos: promos}
}

type applyPromocodeRequest struct {
	Code string `json:"code"`
}

// Apply validates a code against the current subtotal and applies the
// resulting discount. Rejections surface the server-supplied reason
// when there is one.
func (h *PromocodeHandler) Apply(c *fiber.Ctx) error {
	var req applyPromocodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	session := middleware.GetCartSession(c)
	cart := h.carts.Items(c.Context(), session)

	applied, err := h.promos.Apply(c.Context(), session, req.Code, pricing.Subtotal(cart))
	if err != nil {
		message := "Промокод не найден"
		var rejection *services.RejectionError
		if errors.As(err, &rejection) {
			if rejection.Reason != "" {
				message = rejection.Reason
			}
		} else {
			log.Printf("[Promo] validation call failed for session %s: %v", session, err)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}

	payload := fiber.Map{"success": true}
	if applied != nil {
		payload["message"] = fmt.Sprintf("Промокод применён: скидка %v ₸", applied.Discount)
	}
	return c.JSON(payload)
}

// Remove clears the applied promocode locally, no network call.
func (h *PromocodeHandler) Remove(c *fiber.Ctx) error {
	h.promos.Remove(middleware.GetCartSession(c))
	return c.JSON(fiber.Map{"success": true})
}

// Edited signals that the customer changed the code text, which
// clears the applied promocode until it is re-validated.
func (h *PromocodeHandler) Edited(c *fiber.Ctx) error {
	h.promos.Edited(middleware.GetCartSession(c))
	return c.JSON(fiber.Map{"success": true})
}
