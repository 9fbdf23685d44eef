// Package server assembles the storefront's Fiber application.
package server

import (
	"strings"
	"time"

	"parlour/internal/config"
	"parlour/internal/handlers"
	"parlour/internal/middleware"
	"parlour/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// New builds the Fiber app serving the shop over store. publisher may be nil,
// in which case no events are emitted.
func New(cfg config.Config, store Store, publisher services.EventPublisher) *fiber.App {
	authService := services.NewAuthService(store.Users, publisher)
	catalogService := services.NewCatalogService(store.Products, store.Feedback, store.Orders, publisher, cfg.ShopName)
	adminService := services.NewAdminService(store.Users, store.Products, store.Feedback, store.Orders)

	views := handlers.NewViews(authService, catalogService, adminService, handlers.ShopInfo{
		Name:        cfg.ShopName,
		Helpline:    cfg.Helpline,
		BannerImage: cfg.BannerImage,
		TermsText:   cfg.TermsText,
	})

	pageHandler := handlers.NewPageHandler(views)
	authHandler := handlers.NewAuthHandler(authService, views)
	catalogHandler := handlers.NewCatalogHandler(catalogService, views)
	adminHandler := handlers.NewAdminHandler(adminService, views)

	app := fiber.New(fiber.Config{
		AppName:      cfg.ShopName,
		UnescapePath: true,
	})

	app.Use(logger.New())
	if cfg.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowOrigins,
			AllowMethods:     "GET,POST,DELETE,OPTIONS",
			AllowHeaders:     "Origin, Content-Type, Accept",
			AllowCredentials: !strings.Contains(cfg.AllowOrigins, "*"),
		}))
	}

	sessions := session.New(session.Config{
		Expiration:     cfg.SessionExpiration,
		KeyLookup:      "cookie:" + cfg.SessionCookie,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})

	apiV1 := app.Group("/api/v1", middleware.Session(sessions))
	pageHandler.RegisterRoutes(apiV1)
	authHandler.RegisterRoutes(apiV1)
	catalogHandler.RegisterRoutes(apiV1)
	adminHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
			"events": publisher != nil,
		})
	})

	return app
}
