package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartCanteen/app/echo-server/router"
	"smartCanteen/business/behavior"
	"smartCanteen/business/catalog"
	merchantService "smartCanteen/business/merchant"
	"smartCanteen/business/orders"
	"smartCanteen/business/pricing"
	"smartCanteen/business/segmentation"
	userService "smartCanteen/business/user"
	"smartCanteen/internal/middleware"
	"smartCanteen/internal/repository/notification"
	psqlRepo "smartCanteen/internal/repository/postgres"
	redisRepo "smartCanteen/internal/repository/redis"
	"smartCanteen/internal/rest"
	"smartCanteen/pkg/config"
	"smartCanteen/pkg/database"
	redisdb "smartCanteen/pkg/database/redis"
	"smartCanteen/pkg/logger"
	"smartCanteen/pkg/metrics"
	"smartCanteen/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting SmartCanteen", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	// Init notification from mailjet
	mailjetEmail := notification.NewMailjetRepository(
		notification.MailjetConfig{
			MailjetBaseURL:           cfg.Mailjet.MailjetBaseUrl,
			MailjetBasicAuthUsername: cfg.Mailjet.MailjetBasicAuthUsername,
			MailjetBasicAuthPassword: cfg.Mailjet.MailjetBasicAuthPassword,
			MailjetSenderEmail:       cfg.Mailjet.MailjetSenderEmail,
			MailjetSenderName:        cfg.Mailjet.MailjetSenderName,
		},
	)

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	merchantRepo := psqlRepo.NewMerchantRepository(db)
	menuItemRepo := psqlRepo.NewMenuItemRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	behaviorRepo := psqlRepo.NewBehaviorRepository(db)
	priceTierRepo := psqlRepo.NewPriceTierRepository(db)
	discountRuleRepo := psqlRepo.NewDiscountRuleRepository(db)
	statsRepo := psqlRepo.NewStatsRepository(db)
	tokenRepo := redisRepo.NewTokenRepository(redisClient)

	// Init service
	usrService := userService.NewUserService(userRepo, validate, mailjetEmail, tokenRepo, cfg.App.AppEmailVerificationKey, cfg.App.AppDeploymentUrl)
	mrcService := merchantService.NewMerchantService(merchantRepo, validate, discountRuleRepo, statsRepo)
	pricingService := pricing.NewPricingService(priceTierRepo, discountRuleRepo)
	catalogService := catalog.NewCatalogService(menuItemRepo, pricingService)
	ordersService := orders.NewOrdersService(ordersRepo, menuItemRepo, pricingService, behaviorRepo)
	behaviorService := behavior.NewBehaviorService(behaviorRepo)
	pipelineService := segmentation.NewPipelineService(merchantRepo, behaviorRepo, priceTierRepo)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	merchantHandler := rest.NewMerchantHandler(mrcService)
	catalogHandler := rest.NewCatalogHandler(catalogService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	behaviorHandler := rest.NewBehaviorHandler(behaviorService)
	pipelineHandler := rest.NewPipelineAdminHandler(pipelineService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupMerchantRoutes(api, merchantHandler, middleware.AuthMiddleware())
	router.SetupCatalogRoutes(api, catalogHandler, middleware.AuthMiddleware())
	router.SetupOrdersRoutes(api, ordersHandler, authRequired)
	router.SetupBehaviorRoutes(api, behaviorHandler, authRequired)
	router.SetupPipelineAdminRoutes(api, pipelineHandler, middleware.AuthMiddleware())

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
