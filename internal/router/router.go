package router

import (
	"github.com/gin-gonic/gin"
	"github.com/jmlee/fantasy-shop-backend/config"
	"github.com/jmlee/fantasy-shop-backend/internal/app/controller"
	"github.com/jmlee/fantasy-shop-backend/internal/app/model"
	"github.com/jmlee/fantasy-shop-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	itemController      *controller.ItemController
	cartController      *controller.CartController
	orderController     *controller.OrderController
	inventoryController *controller.InventoryController
	adminController     *controller.AdminController
	authMiddleware      *middleware.AuthMiddleware
	rateLimit           *middleware.RateLimitMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	itemController *controller.ItemController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	inventoryController *controller.InventoryController,
	adminController *controller.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		itemController:      itemController,
		cartController:      cartController,
		orderController:     orderController,
		inventoryController: inventoryController,
		adminController:     adminController,
		authMiddleware:      authMiddleware,
		rateLimit:           rateLimit,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "CS Fantasy Shop API is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(r.rateLimit.Limit("auth"))
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)

			auth.POST("/kakao", r.authController.KakaoLogin)
			auth.GET("/kakao/login", r.authController.GetKakaoLoginURL)
			auth.GET("/kakao/callback", r.authController.KakaoCallback)
			auth.POST("/firebase", r.authController.FirebaseLogin)
		}

		items := api.Group("/items")
		{
			items.GET("", r.itemController.ListItems)
			items.GET("/popular", r.itemController.GetPopularItems)
			items.GET("/:id", r.itemController.GetItem)
		}

		api.GET("/categories", r.itemController.GetCategories)

		cart := api.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PATCH("/:id", r.cartController.UpdateCartItem)
			// "/clear" must register before the wildcard delete
			cart.DELETE("/clear", r.cartController.ClearCart)
			cart.DELETE("/:id", r.cartController.RemoveCartItem)
		}

		orders := api.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.Checkout)
			orders.GET("", r.orderController.GetMyOrders)
			orders.GET("/:id", r.orderController.GetOrder)
		}

		api.GET("/inventory",
			r.authMiddleware.Authenticate(),
			r.inventoryController.GetMyInventory,
		)

		admin := api.Group("/admin")
		admin.Use(
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(model.RoleAdmin),
		)
		{
			admin.GET("/items", r.itemController.ListAllItems)
			admin.POST("/items", r.adminController.CreateItem)
			admin.PATCH("/items/:id", r.adminController.UpdateItem)
			admin.DELETE("/items/:id", r.adminController.DeleteItem)

			admin.GET("/orders", r.adminController.GetAllOrders)

			stats := admin.Group("/stats")
			{
				stats.GET("/popular-items", r.adminController.GetPopularItems)
				stats.GET("/top-users", r.adminController.GetTopUsers)
				stats.GET("/orders-summary", r.adminController.GetOrdersSummary)
				stats.GET("/orders-summary/export", r.adminController.ExportOrdersSummary)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
