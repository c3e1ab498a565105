// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/currency"
	"github.com/your-org/sneakershop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/sneakershop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every route group under the API prefix
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupAuthRoutes(rg, db, redisClient, cfg)
	SetupProductRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, redisClient, cfg)
	SetupCheckoutRoutes(rg, db, redisClient, cfg)
	SetupOrderRoutes(rg, db, cfg)
	SetupWishlistRoutes(rg, db, cfg)
	SetupCurrencyRoutes(rg, cfg)
	SetupSupportRoutes(rg, db, cfg)
	SetupAdminRoutes(rg, db, redisClient, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password/:token", authHandler.ResetPassword)
		auth.POST("/logout", authHandler.Logout)
	}

	account := rg.Group("/account")
	account.Use(middleware.AuthMiddleware(cfg))
	{
		account.GET("/profile", authHandler.GetProfile)
		account.PUT("/profile", authHandler.UpdateProfile)
		account.PUT("/password", authHandler.ChangePassword)
	}
}

// SetupProductRoutes sets up the public catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	reviewHandler := handlers.NewReviewHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/brands", productHandler.ListBrands)
		products.GET("/:sku", productHandler.GetProduct)
		products.GET("/:sku/reviews", reviewHandler.ListReviews)
		products.POST("/:sku/reviews", reviewHandler.AddReview)
	}
}

// SetupCartRoutes sets up the session cart routes. Carts work for guests
// via the session cookie, so auth is optional throughout.
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items", cartHandler.UpdateQuantity)
		cart.DELETE("/items", cartHandler.RemoveFromCart)
		cart.POST("/items/move-to-wishlist", cartHandler.MoveToWishlist)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

// SetupCheckoutRoutes sets up checkout and order confirmation routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg)

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		checkout.POST("", checkoutHandler.PlaceOrder)
		checkout.GET("/confirmation/:orderNumber", checkoutHandler.GetConfirmation)
	}
}

// SetupOrderRoutes sets up the signed-in customer's order routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.GetMyOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/invoice", orderHandler.DownloadInvoice)
	}
}

// SetupWishlistRoutes sets up wishlist routes
func SetupWishlistRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	wishlistHandler := handlers.NewWishlistHandler(db, cfg)

	wishlist := rg.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware(cfg))
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("/toggle", wishlistHandler.Toggle)
		wishlist.DELETE("/:productId", wishlistHandler.Remove)
	}
}

// SetupCurrencyRoutes sets up rate and locale routes. A single handler
// instance is shared so the in-process rate cache is too.
func SetupCurrencyRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	currencyHandler := handlers.NewCurrencyHandler(currency.NewService(cfg), cfg)

	rg.GET("/currency/rates", currencyHandler.GetRates)
	rg.GET("/currency/convert", currencyHandler.Convert)
	rg.GET("/locale", currencyHandler.Locale)
}

// SetupSupportRoutes sets up public support routes
func SetupSupportRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	supportHandler := handlers.NewSupportHandler(db, cfg)

	support := rg.Group("/support")
	{
		support.POST("/tickets", supportHandler.CreateTicket)
		support.GET("/tickets/:token", supportHandler.GetTicket)
		support.POST("/tickets/:token/messages", supportHandler.Reply)
		support.POST("/order-status", supportHandler.OrderStatusLookup)
	}
}

// SetupAdminRoutes sets up the admin panel routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)
	importHandler := handlers.NewImportHandler(db, cfg)
	supportHandler := handlers.NewSupportHandler(db, cfg)
	userAdminHandler := handlers.NewUserAdminHandler(db, redisClient, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", analyticsHandler.Dashboard)
		admin.GET("/dashboard/top-products", analyticsHandler.TopProducts)
		admin.GET("/activity", analyticsHandler.RecentActivity)

		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.GET("/products/:id/stock", productHandler.GetStock)
		admin.PUT("/products/:id/stock", productHandler.UpdateStock)

		admin.GET("/import/search", importHandler.SearchCatalog)
		admin.POST("/import", importHandler.ImportProducts)

		admin.GET("/orders", orderHandler.ListOrders)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)

		admin.GET("/support/tickets", supportHandler.ListTickets)
		admin.POST("/support/tickets/:token/messages", supportHandler.StaffReply)
		admin.PUT("/support/tickets/:token/close", supportHandler.CloseTicket)

		admin.GET("/users", userAdminHandler.ListUsers)
		admin.PUT("/users/:id/active", userAdminHandler.SetUserActive)
	}
}
