package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"resto-backend/config"
	"resto-backend/controllers"
	"resto-backend/middleware"
	"resto-backend/utils"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	rc *controllers.ReservationController,
	rdb *redis.Client,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())
	r.Static("/uploads", "./"+utils.EnvOrDefault("UPLOAD_DIR", "uploads"))

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	contentCache := middleware.CachePublicGET(rdb, 60*time.Second)

	api := r.Group("/api")
	{
		// Public content, cached.
		content := api.Group("")
		content.Use(contentCache)
		{
			content.GET("/menu-items", controllers.GetMenuItems)
			content.GET("/gallery-images", controllers.GetGalleryImages)
			content.GET("/special-offers", controllers.GetSpecialOffers)
			content.GET("/reviews", controllers.GetApprovedReviews)
			content.GET("/hero", controllers.GetHeroContent)
			content.GET("/about", controllers.GetAboutSections)
			content.GET("/contact", controllers.GetContactInfo)
		}

		api.POST("/reviews", limiter, controllers.CreateReview)
		api.POST("/newsletter/subscribe", limiter, controllers.Subscribe)

		reservations := api.Group("/reservations")
		{
			reservations.GET("/table-options", rc.GetTableOptions)
			reservations.GET("/confirmed", rc.GetConfirmed)
			reservations.POST("", limiter, rc.CreateReservation)

			// Reference-code routes come last so the fixed paths above win.
			reservations.GET("/:ref", rc.GetReservation)
			reservations.POST("/:ref/payment-proof", limiter, rc.UploadPaymentProof)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/forgot", controllers.ForgotPassword)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin(jwtSecret))
		{
			admin.GET("/dashboard", controllers.GetDashboard)
			admin.GET("/dashboard/chart", controllers.GetDashboardChart)

			admin.POST("/uploads", controllers.UploadAsset)

			adminReservations := admin.Group("/reservations")
			{
				adminReservations.GET("", rc.ListReservations)
				adminReservations.PATCH("/:id", rc.PatchReservation)
				adminReservations.POST("/:id/confirm-payment", rc.ConfirmPayment)
				adminReservations.POST("/:id/reject", rc.RejectReservation)
				adminReservations.POST("/:id/checkin", rc.MarkArrived)
				adminReservations.POST("/:id/undo-checkin", rc.UndoCheckIn)
				adminReservations.DELETE("/:id", rc.DeleteReservation)
			}

			menu := admin.Group("/menu-items")
			{
				menu.POST("", controllers.CreateMenuItem)
				menu.PUT("/:id", controllers.UpdateMenuItem)
				menu.DELETE("/:id", controllers.DeleteMenuItem)
			}

			gallery := admin.Group("/gallery-images")
			{
				gallery.POST("", controllers.CreateGalleryImage)
				gallery.PUT("/:id", controllers.UpdateGalleryImage)
				gallery.DELETE("/:id", controllers.DeleteGalleryImage)
			}

			offers := admin.Group("/special-offers")
			{
				offers.POST("", controllers.CreateSpecialOffer)
				offers.PUT("/:id", controllers.UpdateSpecialOffer)
				offers.DELETE("/:id", controllers.DeleteSpecialOffer)
			}

			reviews := admin.Group("/reviews")
			{
				reviews.GET("", controllers.ListReviews)
				reviews.POST("/:id/approve", controllers.ApproveReview)
				reviews.DELETE("/:id", controllers.DeleteReview)
			}

			hero := admin.Group("/hero")
			{
				hero.PUT("", controllers.UpdateHeroContent)
				hero.GET("/images", controllers.ListHeroImages)
				hero.POST("/images", controllers.CreateHeroImage)
				hero.DELETE("/images/:id", controllers.DeleteHeroImage)
			}

			about := admin.Group("/about")
			{
				about.POST("", controllers.CreateAboutSection)
				about.PUT("/:id", controllers.UpdateAboutSection)
				about.DELETE("/:id", controllers.DeleteAboutSection)
			}

			admin.PUT("/contact", controllers.UpdateContactInfo)

			subscribers := admin.Group("/subscribers")
			{
				subscribers.GET("", controllers.ListSubscribers)
				subscribers.DELETE("/:id", controllers.DeleteSubscriber)
			}
		}
	}

	return r
}
