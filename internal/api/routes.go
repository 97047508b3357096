package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all HTTP routes on the Fiber app.
func RegisterRoutes(app *fiber.App, serviceName string, handler *Handler) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Health check. The proxy holds no connections of its own, so liveness
	// is the only signal; upstream reachability is reported per request.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"service": serviceName,
		})
	})

	// API routes
	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/get-token", handler.GetTokenHandler)
	auth.Post("/get-account-profile", handler.GetAccountProfileHandler)
	auth.Post("/get-contact-info", handler.GetContactInfoHandler)

	products := v1.Group("/products")
	products.Post("/all", handler.ListProductsHandler)
	products.Post("/single", handler.GetProductHandler)
	products.Post("/marketplace", handler.MarketplaceProductsHandler)
}
