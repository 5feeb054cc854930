package router

import (
	"smartCanteen/internal/middleware"
	"smartCanteen/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.GetProfile, authRequired)
}

func SetupMerchantRoutes(api *echo.Group, handler *rest.MerchantHandler, authRequired echo.MiddlewareFunc) {
	merchants := api.Group("/merchants")

	merchants.POST("/register", handler.Register)
	merchants.POST("/login", handler.Login)
	merchants.GET("", handler.GetAllMerchants, authRequired)

	merchants.GET("/rules", handler.GetRules, authRequired, middleware.MerchantOnly())
	merchants.PUT("/rules", handler.ReplaceRules, authRequired, middleware.MerchantOnly())
	merchants.GET("/stats", handler.GetStats, authRequired, middleware.MerchantOnly())
}

func SetupCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler, authRequired echo.MiddlewareFunc) {
	menu := api.Group("/menu", authRequired)
	menu.GET("/:merchant_id", handler.GetMenu)

	items := api.Group("/items", authRequired, middleware.MerchantOnly())
	items.POST("", handler.CreateItem)
	items.PUT("/:id", handler.UpdateItem)
	items.DELETE("/:id", handler.DeleteItem)
}

func SetupOrdersRoutes(api *echo.Group, handler *rest.OrdersHandler, authRequired echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)
	orders.POST("", handler.CreateOrder)
	orders.GET("", handler.GetAllOrders)
	orders.GET("/:id", handler.GetOrderByID)

	// merchant sessions are plain JWT, not redis-backed
	api.GET("/merchants/orders", handler.GetMerchantOrders,
		middleware.AuthMiddleware(), middleware.MerchantOnly())
	api.PUT("/orders/:id/status", handler.UpdateOrderStatus,
		middleware.AuthMiddleware(), middleware.MerchantOnly())
}

func SetupBehaviorRoutes(api *echo.Group, handler *rest.BehaviorHandler, authRequired echo.MiddlewareFunc) {
	behavior := api.Group("/behavior", authRequired)
	behavior.POST("/events", handler.LogEvent)
}

func SetupPipelineAdminRoutes(api *echo.Group, handler *rest.PipelineAdminHandler, authRequired echo.MiddlewareFunc) {
	admin := api.Group("/admin/pipeline", authRequired, middleware.AdminOnly())
	admin.POST("/run", handler.RunPipeline)
}
