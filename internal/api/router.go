package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"swingclub/server/internal/api/handlers"
	"swingclub/server/internal/api/middleware"
	"swingclub/server/internal/config"
	"swingclub/server/internal/notify"
	"swingclub/server/internal/repository"
	"swingclub/server/internal/services"
)

// SetupRouter configures and returns the main Gin engine. Services used by
// the API handlers are initialized here.
func SetupRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *gin.Engine {
	userService := services.NewUserService(db)
	listingService := services.NewListingService(db, cfg)

	var notifier notify.Dispatcher
	if rdb != nil {
		notifier = notify.NewAsynqDispatcher(rdb, cfg)
	} else {
		notifier = notify.LogDispatcher{}
	}

	inquiryRepo := repository.NewMongoInquiryRepository(db)
	inquiryService := services.NewInquiryService(inquiryRepo, listingService, userService, notifier, cfg)

	r := gin.Default()

	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	authHandler := handlers.NewRestAuthHandler(cfg, userService)
	listingHandler := handlers.NewRestListingHandler(listingService)
	inquiryHandler := handlers.NewRestInquiryHandler(inquiryService)

	v1 := r.Group("/v1")
	{
		// Public routes
		v1.POST("/auth/signup", authHandler.Signup)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/listing/:id", listingHandler.GetListingByID)

		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated routes
		authRequired := v1.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.POST("/listing", listingHandler.CreateListing)
			authRequired.GET("/user/me/listing", listingHandler.GetMyListings)

			authRequired.POST("/inquiry", inquiryHandler.CreateInquiry)
			authRequired.GET("/inquiry", inquiryHandler.GetUserInquiries)
			authRequired.GET("/inquiry/:id", inquiryHandler.GetInquiry)
			authRequired.GET("/inquiry/:id/message", inquiryHandler.GetInquiryMessages)
			authRequired.POST("/inquiry/:id/message", inquiryHandler.SendMessage)
			authRequired.PUT("/inquiry/:id/status", inquiryHandler.UpdateInquiryStatus)
			authRequired.PUT("/inquiry/:id/read", inquiryHandler.MarkInquiryAsRead)
		}
	}

	return r
}
