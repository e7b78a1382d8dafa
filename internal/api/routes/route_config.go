package routes

import (
	"github.com/amanjaiswal7236/chai-lelo/internal/api/handlers"
	"github.com/amanjaiswal7236/chai-lelo/internal/middleware"
	"github.com/amanjaiswal7236/chai-lelo/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	MenuHandler     handlers.MenuHandler
	OrderHandler    handlers.OrderHandler
	LocationHandler handlers.LocationHandler
	AdminHandler    handlers.AdminHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Health()
	c.Auth()
	c.Menu()
	c.Locations()
	c.Orders()
	c.Admin()
}

func (c *Config) Health() {
	c.App.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	{
		auth.Post("/request-otp", c.UserHandler.RequestOTP)
		auth.Post("/verify-otp", c.UserHandler.VerifyOTP)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Menu() {
	menu := c.App.Group("/api/menu")
	{
		menu.Get("",
			c.Middleware.AuthMiddleware(c.JWTService),
			c.Middleware.AdminMiddleware(),
			c.MenuHandler.GetAllMenuItems,
		)
		menu.Get("/:category", c.MenuHandler.GetMenuByCategory)
	}
}

func (c *Config) Locations() {
	locations := c.App.Group("/api/locations")
	{
		locations.Get("", c.LocationHandler.GetActiveLocations)

		authed := c.Middleware.AuthMiddleware(c.JWTService)
		adminOnly := c.Middleware.AdminMiddleware()
		locations.Post("", authed, adminOnly, c.LocationHandler.CreateLocation)
		locations.Put("/:id", authed, adminOnly, c.LocationHandler.UpdateLocation)
		locations.Patch("/:id/toggle", authed, adminOnly, c.LocationHandler.ToggleLocation)
	}
}

func (c *Config) Orders() {
	orders := c.App.Group("/api/orders", c.Middleware.AuthMiddleware(c.JWTService))
	{
		orders.Post("", c.OrderHandler.CreateOrder)
		orders.Get("/current", c.OrderHandler.GetCurrentOrder)
		orders.Get("/history", c.OrderHandler.GetOrderHistory)
		orders.Patch("/:id/payment", c.OrderHandler.UpdatePaymentStatus)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/admin",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.AdminMiddleware(),
	)

	menu := admin.Group("/menu")
	{
		menu.Post("", c.MenuHandler.CreateMenuItem)
		menu.Put("/:id", c.MenuHandler.UpdateMenuItem)
		menu.Patch("/:id/toggle", c.MenuHandler.ToggleMenuItem)
		menu.Post("/:id/image", c.MenuHandler.UploadItemImage)
	}

	orders := admin.Group("/orders")
	{
		orders.Get("", c.AdminHandler.ListOrders)
		orders.Patch("/:id", c.AdminHandler.UpdateOrder)
		orders.Post("/:id/cancel", c.AdminHandler.CancelOrder)
	}

	admin.Post("/deadline", c.AdminHandler.SetDeadline)
	admin.Post("/counter", c.AdminHandler.SetCounterCap)
	admin.Get("/dashboard", c.AdminHandler.GetDashboard)
	admin.Post("/dashboard/email", c.AdminHandler.EmailDailySummary)
}
