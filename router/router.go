package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mozoqr/mozo-app/controllers"
	"github.com/mozoqr/mozo-app/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	categoryCtrl := controllers.NewCategoryController(db)
	productCtrl := controllers.NewProductController(db)
	tableCtrl := controllers.NewTableController(db)
	sessionCtrl := controllers.NewSessionController(db)
	orderCtrl := controllers.NewOrderController(db)
	callCtrl := controllers.NewServiceCallController(db)
	adminCtrl := controllers.NewAdminController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Customer-facing, no auth: everything a guest reaches by scanning
	// a table QR.
	r.GET("/restaurants/by-slug/:slug", restaurantCtrl.GetBySlug)
	r.GET("/restaurants/:restaurant_id/menu", restaurantCtrl.GetMenu)
	r.GET("/restaurants/:restaurant_id/categories", categoryCtrl.GetCategories)
	r.POST("/restaurants/:restaurant_id/service-calls", callCtrl.CreateEntranceCall)

	r.GET("/tables/scan/:qr_key", tableCtrl.ScanTable)
	r.POST("/tables/:table_id/sessions", sessionCtrl.StartOrJoinSession)

	r.GET("/sessions/:session_id", sessionCtrl.GetSessionByID)
	r.POST("/sessions/:session_id/consumers", sessionCtrl.AddConsumer)
	r.POST("/sessions/:session_id/orders", orderCtrl.AddOrderItems)
	r.GET("/sessions/:session_id/totals", orderCtrl.GetSessionTotals)
	r.POST("/sessions/:session_id/service-calls", callCtrl.CreateServiceCall)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	auth.POST("/restaurants", restaurantCtrl.CreateRestaurant)

	// CATALOG
	auth.POST("/restaurants/:restaurant_id/categories", categoryCtrl.CreateCategory)
	auth.PATCH("/categories/:category_id", categoryCtrl.UpdateCategory)
	auth.POST("/restaurants/:restaurant_id/products", productCtrl.CreateProduct)
	auth.PUT("/products/:product_id", productCtrl.UpdateProduct)
	auth.PATCH("/products/:product_id/availability", productCtrl.ToggleAvailability)
	auth.DELETE("/products/:product_id", productCtrl.DeleteProduct)

	// TABLES
	auth.GET("/restaurants/:restaurant_id/tables", tableCtrl.GetAllTables)
	auth.POST("/restaurants/:restaurant_id/tables", tableCtrl.CreateTable)
	auth.POST("/restaurants/:restaurant_id/tables/batch", tableCtrl.CreateTablesBatch)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PUT("/tables/:table_id", tableCtrl.UpdateTable)
	auth.PATCH("/tables/:table_id/toggle", tableCtrl.ToggleTable)
	auth.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

	// SESSIONS / ORDERS (staff)
	auth.PATCH("/sessions/:session_id/status", sessionCtrl.UpdateSessionStatus)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.PATCH("/order-items/:item_id/status", orderCtrl.UpdateOrderItemStatus)
	auth.PATCH("/service-calls/:call_id/resolve", callCtrl.ResolveServiceCall)

	// DASHBOARD
	auth.GET("/restaurants/:restaurant_id/sessions/active", adminCtrl.GetActiveSessions)
	auth.GET("/restaurants/:restaurant_id/sessions", adminCtrl.GetSessionsByDate)
	auth.GET("/restaurants/:restaurant_id/notifications", adminCtrl.GetNotifications)
	auth.GET("/restaurants/:restaurant_id/metrics", adminCtrl.GetMetrics)

	return r
}
