package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"guest-checkin/controllers"
	"guest-checkin/middleware"
	"guest-checkin/services"
)

type Controllers struct {
	Guest  *controllers.GuestController
	Import *controllers.ImportController
	Email  *controllers.EmailController
	Auth   *controllers.AuthController
}

// SetupRouter mounts every route under /api.
func SetupRouter(ctl Controllers, auth *services.AuthService, origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

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
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/auth/login", ctl.Auth.Login)

		staff := api.Group("", middleware.RequireSession(auth))

		guests := staff.Group("/guests")
		{
			guests.GET("", ctl.Guest.ListGuests)
			guests.POST("", ctl.Guest.CreateGuest)

			// must be registered next to /:token, gin prefers the static segment
			guests.POST("/checkin-by-info", ctl.Guest.CheckInByInfo)

			guests.GET("/:token", ctl.Guest.GetGuest)
			guests.PUT("/:token", ctl.Guest.UpdateGuest)
			guests.PATCH("/:token", ctl.Guest.PatchGuest)
			guests.DELETE("/:token", ctl.Guest.DeleteGuest)
		}

		staff.POST("/import", ctl.Import.ImportCSV)
		staff.GET("/import/history", ctl.Import.ImportHistory)

		staff.POST("/send-email", ctl.Email.SendInvitation)
	}

	return r
}
