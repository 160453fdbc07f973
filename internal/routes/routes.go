package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/medovik/internal/cartstore"
	"github.com/example/medovik/internal/checkout"
	"github.com/example/medovik/internal/config"
	"github.com/example/medovik/internal/handlers"
	"github.com/example/medovik/internal/middleware"
	"github.com/example/medovik/internal/promo"
	"github.com/example/medovik/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, kv cartstore.KV, cfg *config.Config) {
	carts := cartstore.New(kv)
	promos := promo.NewManager(services.NewPromocodeService(cfg.PromoAPIBaseURL))
	workflow := checkout.NewWorkflow(checkout.Config{
		WhatsAppNumber:   cfg.WhatsAppNumber,
		TelegramHandle:   cfg.TelegramHandle,
		CountdownSeconds: cfg.CountdownSeconds,
	}, carts, promos, services.NewOrderService(cfg.OrderAPIBaseURL))

	catalogHandler := handlers.NewCatalogHandler(db)
	cartHandler := handlers.NewCartHandler(db, carts, promos)
	promocodeHandler := handlers.NewPromocodeHandler(carts, promos)
	checkoutHandler := handlers.NewCheckoutHandler(workflow)

	api := app.Group("/api", middleware.CartSession())

	// Read-only catalog
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/:id", catalogHandler.GetProduct)
	api.Post("/seed", catalogHandler.Seed)

	// Cart
	cart := api.Group("/cart")
	cart.Get("/", cartHandler.GetCart)
	cart.Delete("/", cartHandler.ClearCart)
	cart.Post("/items", cartHandler.AddItem)
	cart.Patch("/items/:id", cartHandler.UpdateItem)
	cart.Delete("/items/:id", cartHandler.RemoveItem)

	// Promocode
	cart.Post("/promocode", promocodeHandler.Apply)
	cart.Delete("/promocode", promocodeHandler.Remove)
	cart.Post("/promocode/edited", promocodeHandler.Edited)

	// Checkout
	api.Post("/checkout", checkoutHandler.Submit)
	api.Get("/checkout", checkoutHandler.State)
	api.Delete("/checkout", checkoutHandler.Cancel)
}
