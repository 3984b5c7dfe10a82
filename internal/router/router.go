// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/remoteestate/backend/internal/config"
	"github.com/remoteestate/backend/internal/handlers"
	"github.com/remoteestate/backend/internal/middleware"
	"github.com/remoteestate/backend/internal/models"
	"github.com/remoteestate/backend/internal/search"
	"github.com/remoteestate/backend/internal/services"
	"github.com/remoteestate/backend/internal/utils"
)

// Initialize wires services, handlers and routes. index may be nil, in which
// case listing search degrades to a database scan.
func Initialize(db *gorm.DB, cfg *config.Config, index search.Index) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg)
	authService := services.NewAuthService(db, cfg, storageService, index)
	listingService := services.NewListingService(db, index)
	offerService := services.NewOfferService(db)
	paymentService := services.NewPaymentService(db, cfg)
	contractService := services.NewContractService(db, paymentService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	listingHandler := handlers.NewListingHandler(listingService)
	offerHandler := handlers.NewOfferHandler(offerService)
	contractHandler := handlers.NewContractHandler(contractService, storageService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, authService)
	uploadHandler := handlers.NewUploadHandler(storageService)
	searchHandler := handlers.NewSearchHandler(listingService, cfg.Algolia)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// Authentication
	auth := r.Group("")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}
	r.GET("/user", middleware.AuthRequired(), authHandler.GetUser)
	r.DELETE("/account", middleware.AuthRequired(), authHandler.DeleteAccount)

	// Lawyers directory
	r.GET("/lawyers", authHandler.GetLawyers)

	// Listings
	listings := r.Group("/listings")
	{
		listings.GET("", middleware.OptionalAuth(), listingHandler.GetListings)
		listings.GET("/my", middleware.AuthRequired(), listingHandler.GetMyListings)
		listings.GET("/lawyer/assigned",
			middleware.AuthRequired(), middleware.RoleRequired(models.UserRoleLawyer),
			listingHandler.GetAssignedListings)
		listings.GET("/:id", middleware.OptionalAuth(), listingHandler.GetListing)
		listings.POST("", middleware.AuthRequired(), listingHandler.CreateListing)
		listings.PATCH("/:id/verify",
			middleware.AuthRequired(), middleware.RoleRequired(models.UserRoleLawyer),
			listingHandler.UpdateVerification)
		listings.DELETE("/:id", middleware.AuthRequired(), listingHandler.DeleteListing)
	}

	// Offers
	offers := r.Group("/offers")
	offers.Use(middleware.AuthRequired())
	{
		offers.POST("", offerHandler.CreateOffer)
		offers.GET("/my", offerHandler.GetMyOffers)
		offers.PATCH("/:id", offerHandler.UpdateOffer)
		offers.DELETE("/:id", offerHandler.RetractOffer)
	}

	// Contracts
	contracts := r.Group("/contracts")
	contracts.Use(middleware.AuthRequired())
	{
		contracts.POST("", contractHandler.CreateContract)
		contracts.GET("/my", contractHandler.GetMyContracts)
		contracts.GET("/:id", contractHandler.GetContract)
		contracts.GET("/review",
			middleware.RoleRequired(models.UserRoleLawyer),
			contractHandler.GetContractsForReview)
		contracts.PATCH("/:id",
			middleware.RoleRequired(models.UserRoleLawyer),
			contractHandler.ReviewContract)
		contracts.PATCH("/:id/upload",
			middleware.RoleRequired(models.UserRoleLawyer), middleware.UploadRateLimit(),
			contractHandler.UploadContractDocument)
	}

	// Uploads
	r.POST("/upload-image",
		middleware.AuthRequired(), middleware.UploadRateLimit(),
		uploadHandler.UploadImage)
	r.POST("/upload-document",
		middleware.AuthRequired(), middleware.UploadRateLimit(),
		uploadHandler.UploadDocument)

	// Search
	r.GET("/search", searchHandler.Search)
	r.GET("/algolia-config", searchHandler.AlgoliaConfig)

	// Payments
	r.POST("/create-checkout-session", middleware.AuthRequired(), paymentHandler.CreateLegalFeeCheckout)
	r.POST("/create-listing-checkout", middleware.AuthRequired(), paymentHandler.CreateListingFeeCheckout)
	r.POST("/webhooks/stripe", paymentHandler.StripeWebhook)

	return r
}
