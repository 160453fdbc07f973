package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/medovik/internal/checkout"
	"github.com/example/medovik/internal/middleware"
	"github.com/example/medovik/internal/models"
	"github.com/example/medovik/internal/phone"
)

// CheckoutHandler drives the order submission and redirect countdown.
type CheckoutHandler struct {
	workflow *checkout.Workflow
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(workflow *checkout.Workflow) *CheckoutHandler {
	return &CheckoutHandler{workflow: workflow}
}

type submitRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Messenger string `json:"messenger"`
	Host      string `json:"host"`
}

// Submit validates the form, fires the best-effort order persistence
// and starts the redirect countdown.
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	customer := models.CustomerInfo{
		Name:         req.Name,
		PhoneDisplay: phone.Format(req.Phone),
		PhoneDigits:  phone.Digits(req.Phone),
	}

	session := middleware.GetCartSession(c)
	state, err := h.workflow.Submit(c.Context(), session, customer, checkout.Messenger(req.Messenger), req.Host)
	if err != nil {
		var validation *checkout.ValidationError
		if errors.As(err, &validation) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"message": validation.Message,
			})
		}
		return err
	}

	message := "Перенаправляем в WhatsApp..."
	if state.Messenger == checkout.MessengerTelegram {
		message = "Перенаправляем в Telegram..."
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    state,
	})
}

// State reports the redirect countdown; a redirecting state carries
// the resolved deep link and is delivered once.
func (h *CheckoutHandler) State(c *fiber.Ctx) error {
	state := h.workflow.State(middleware.GetCartSession(c))
	return c.JSON(fiber.Map{"success": true, "data": state})
}

// Cancel aborts a pending countdown when the dialog is closed.
func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	h.workflow.Cancel(middleware.GetCartSession(c))
	return c.JSON(fiber.Map{"success": true})
}
