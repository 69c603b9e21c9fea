// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/technomart/shop-backend/internal/cache"
	"github.com/technomart/shop-backend/internal/config"
	"github.com/technomart/shop-backend/internal/handlers"
	"github.com/technomart/shop-backend/internal/middleware"
	"github.com/technomart/shop-backend/internal/services"
	"github.com/technomart/shop-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, cacheClient *cache.Cache, logger *logrus.Logger) *gin.Engine {
	// Initialize services
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize storage")
	}
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	catalogService := services.NewCatalogService(db, cfg, cacheClient)
	productService := services.NewProductService(db, cfg, cacheClient)
	reviewService := services.NewReviewService(db)
	cartService := services.NewCartService(db)
	wishlistService := services.NewWishlistService(db)
	orderService := services.NewOrderService(db)
	exportService := services.NewExportService(orderService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, storageService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	productHandler := handlers.NewProductHandler(productService, catalogService, storageService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	cartHandler := handlers.NewCartHandler(cartService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	orderHandler := handlers.NewOrderHandler(orderService, exportService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// User routes
		users := v1.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.GET("/me", userHandler.Me)
			users.GET("/me/profile", userHandler.GetProfile)
			users.PUT("/me/profile", userHandler.UpdateProfile)
			users.POST("/me/avatar", middleware.UploadRateLimit(), userHandler.UploadAvatar)
		}

		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", catalogHandler.GetCategories)
			categories.GET("/main", catalogHandler.GetMainCategories)
			categories.GET("/with_counts", catalogHandler.GetCategoriesWithCounts)
			categories.GET("/:id", catalogHandler.GetCategory)

			staff := categories.Group("")
			staff.Use(middleware.AuthRequired(), middleware.StaffRequired())
			{
				staff.POST("", catalogHandler.CreateCategory)
				staff.PUT("/:id", catalogHandler.UpdateCategory)
				staff.DELETE("/:id", catalogHandler.DeleteCategory)
			}
		}

		// Brand routes
		brands := v1.Group("/brands")
		{
			brands.GET("", catalogHandler.GetBrands)
			brands.GET("/:id", catalogHandler.GetBrand)

			staff := brands.Group("")
			staff.Use(middleware.AuthRequired(), middleware.StaffRequired())
			{
				staff.POST("", catalogHandler.CreateBrand)
				staff.PUT("/:id", catalogHandler.UpdateBrand)
				staff.DELETE("/:id", catalogHandler.DeleteBrand)
			}
		}

		// Tag routes
		tags := v1.Group("/tags")
		{
			tags.GET("", catalogHandler.GetTags)

			staff := tags.Group("")
			staff.Use(middleware.AuthRequired(), middleware.StaffRequired())
			{
				staff.POST("", catalogHandler.CreateTag)
				staff.PUT("/:id", catalogHandler.UpdateTag)
				staff.DELETE("/:id", catalogHandler.DeleteTag)
			}
		}

		// Product routes
		products := v1.Group("/products")
		{
			products.GET("", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/featured", productHandler.GetFeatured)
			products.GET("/price_list", productHandler.GetPriceList)
			products.GET("/names", productHandler.GetNames)
			products.GET("/search", middleware.OptionalAuth(), productHandler.GetProducts)
			products.GET("/:id", middleware.OptionalAuth(), productHandler.GetProduct)
			products.GET("/:id/reviews", middleware.OptionalAuth(), reviewHandler.GetProductReviews)
			products.POST("/:id/reviews", middleware.AuthRequired(), reviewHandler.CreateReview)

			staff := products.Group("")
			staff.Use(middleware.AuthRequired(), middleware.StaffRequired())
			{
				staff.POST("", productHandler.CreateProduct)
				staff.PUT("/:id", productHandler.UpdateProduct)
				staff.DELETE("/:id", productHandler.DeleteProduct)
				staff.POST("/:id/tags", productHandler.AttachTag)
				staff.PUT("/:id/tags/:tagId", productHandler.UpdateTagWeight)
				staff.DELETE("/:id/tags/:tagId", productHandler.DetachTag)
				staff.POST("/:id/images", middleware.UploadRateLimit(), productHandler.UploadImage)
				staff.DELETE("/:id/images/:imageId", productHandler.DeleteImage)
				staff.POST("/:id/files", middleware.UploadRateLimit(), productHandler.UploadFile)
				staff.DELETE("/:id/files/:fileId", productHandler.DeleteFile)
			}
		}

		// Product file downloads (public, counted)
		v1.GET("/product-files/:id/download", middleware.DownloadRateLimit(), productHandler.DownloadFile)

		// Review routes
		reviews := v1.Group("/reviews")
		reviews.Use(middleware.AuthRequired())
		{
			reviews.PUT("/:id", reviewHandler.UpdateReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
			reviews.POST("/:id/respond", middleware.StaffRequired(), reviewHandler.Respond)
		}

		// Cart routes
		carts := v1.Group("/carts")
		carts.Use(middleware.AuthRequired())
		{
			carts.GET("/my_cart", cartHandler.GetMyCart)
			carts.POST("/my_cart/clear", cartHandler.ClearCart)
		}

		cartItems := v1.Group("/cart-items")
		cartItems.Use(middleware.AuthRequired())
		{
			cartItems.POST("", cartHandler.AddItem)
			cartItems.PUT("/:id/update_quantity", cartHandler.UpdateQuantity)
			cartItems.DELETE("/:id", cartHandler.RemoveItem)
		}

		// Wishlist routes
		wishlists := v1.Group("/wishlists")
		wishlists.Use(middleware.AuthRequired())
		{
			wishlists.GET("/my_wishlist", wishlistHandler.GetMyWishlist)
			wishlists.POST("/my_wishlist/products/:productId", wishlistHandler.AddProduct)
			wishlists.DELETE("/my_wishlist/products/:productId", wishlistHandler.RemoveProduct)
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.GET("", orderHandler.GetOrders)
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("/:id/cancel", orderHandler.CancelOrder)
			orders.POST("/:id/update_status", middleware.StaffRequired(), orderHandler.UpdateStatus)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.StaffRequired())
		{
			admin.GET("/orders/:id/pdf", orderHandler.ExportOrderPDF)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
