package config

import (
	"os"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/internal/api/handlers"
	"github.com/amanjaiswal7236/chai-lelo/internal/api/routes"
	"github.com/amanjaiswal7236/chai-lelo/internal/middleware"
	"github.com/amanjaiswal7236/chai-lelo/internal/utils"
	"github.com/amanjaiswal7236/chai-lelo/internal/utils/mailing"
	"github.com/amanjaiswal7236/chai-lelo/internal/utils/storage"
	"github.com/amanjaiswal7236/chai-lelo/pkg/dashboard"
	"github.com/amanjaiswal7236/chai-lelo/pkg/jwt"
	"github.com/amanjaiswal7236/chai-lelo/pkg/location"
	"github.com/amanjaiswal7236/chai-lelo/pkg/menu"
	"github.com/amanjaiswal7236/chai-lelo/pkg/notify"
	"github.com/amanjaiswal7236/chai-lelo/pkg/order"
	"github.com/amanjaiswal7236/chai-lelo/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	otpSender := notify.NewOTPSender()
	receiptSender := notify.NewReceiptSender()

	// Repository
	userRepository := user.NewUserRepository(db)
	menuRepository := menu.NewMenuRepository(db)
	locationRepository := location.NewLocationRepository(db)
	orderRepository := order.NewOrderRepository(db)
	counterRepository := order.NewCounterRepository(db)
	deadlineRepository := order.NewDeadlineRepository(db)
	dashboardRepository := dashboard.NewDashboardRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, otpSender)
	menuService := menu.NewMenuService(menuRepository, deadlineRepository, s3)
	locationService := location.NewLocationService(locationRepository)
	orderService := order.NewOrderService(
		orderRepository,
		counterRepository,
		deadlineRepository,
		userRepository,
		menuRepository,
		receiptSender,
	)
	dashboardService := dashboard.NewDashboardService(
		dashboardRepository,
		mailing.SendMail,
		utils.GetConfig("ADMIN_EMAIL"),
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	menuHandler := handlers.NewMenuHandler(menuService, validator)
	orderHandler := handlers.NewOrderHandler(orderService, validator)
	locationHandler := handlers.NewLocationHandler(locationService, validator)
	adminHandler := handlers.NewAdminHandler(orderService, dashboardService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		MenuHandler:     menuHandler,
		OrderHandler:    orderHandler,
		LocationHandler: locationHandler,
		AdminHandler:    adminHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
