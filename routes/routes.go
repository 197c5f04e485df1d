package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stayafrika-backend/controllers"
	"stayafrika-backend/middleware"
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

// SetupRouter wires the controllers and the authorization guard onto the API.
func SetupRouter(
	ac *controllers.AuthController,
	pc *controllers.PropertyController,
	bc *controllers.BookingController,
	rc *controllers.ReviewController,
	mc *controllers.MessageController,
	wc *controllers.WaitlistController,
	guard *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Static("/uploads", "./uploads")

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

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
			auth.POST("/logout", ac.Logout)
			auth.GET("/me", guard.RequireAuthenticated(), ac.Me)
			auth.PUT("/me", guard.RequireAuthenticated(), ac.UpdateMe)
		}

		properties := api.Group("/properties")
		{
			properties.GET("", guard.Identify(), pc.List)
			properties.POST("", guard.RequireHost(), pc.Create)
			properties.GET("/:id", pc.Detail)
			properties.PUT("/:id", guard.RequireHost(), pc.Update)
			properties.PUT("/:id/approve", guard.RequireAdmin(), pc.Approve)
			properties.GET("/:id/reviews", pc.PropertyReviews)
		}

		host := api.Group("/host")
		{
			host.GET("/properties", guard.RequireHost(), pc.HostProperties)
			host.GET("/bookings", guard.RequireHost(), bc.HostBookings)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", guard.RequireAuthenticated(), bc.Create)
			bookings.GET("", guard.RequireAuthenticated(), bc.GuestBookings)
			bookings.PUT("/:id/status", guard.RequireAuthenticated(), bc.UpdateStatus)
		}

		api.POST("/reviews", guard.RequireAuthenticated(), rc.Create)

		messages := api.Group("/messages")
		{
			messages.POST("", guard.RequireAuthenticated(), mc.Send)
			messages.GET("/:id", guard.RequireAuthenticated(), mc.Conversation)
			messages.PUT("/:id/read", guard.RequireAuthenticated(), mc.MarkRead)
		}

		waitlist := api.Group("/waitlist")
		{
			waitlist.POST("", wc.Join)
			waitlist.GET("", guard.RequireAdmin(), wc.Entries)
		}
	}

	return r
}
