package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-frontend/controllers"
	"hotel-frontend/middleware"
	"hotel-frontend/services"
)

// Options carries the non-controller pieces the router needs.
type Options struct {
	CORSOrigins   []string
	SessionCookie string
	Auth          *services.AuthService
	Admin         *services.AdminService
	Storage       *services.StorageService
}

// SetupRouter wires every route of the site.
func SetupRouter(
	opts Options,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	ac *controllers.AuthController,
	cc *controllers.ContactController,
	adc *controllers.AdminController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	allowCredentials := true
	for _, origin := range opts.CORSOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Use(middleware.Session(opts.SessionCookie))
	requireUser := middleware.RequireUser(opts.Auth)

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("/refresh", rc.RefreshRooms)
			rooms.GET("/selected", rc.GetSelectedRoom)
			rooms.GET("/:id", rc.GetRoom)
			rooms.POST("/:id/guests", rc.CheckGuests)
			rooms.POST("/:id/quote", rc.QuoteStay)
			rooms.POST("/:id/book", requireUser, bc.BookRoom)
		}

		bookings := api.Group("/bookings", requireUser)
		{
			bookings.GET("/pending", bc.GetPendingBooking)
		}
		api.GET("/profile", requireUser, bc.GetProfile)

		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
			auth.POST("/logout", ac.Logout)
			auth.POST("/register", ac.Register)
			auth.GET("/me", ac.Me)
		}

		api.POST("/contact", cc.SubmitContact)
	}

	admin := r.Group("/admin")
	{
		admin.POST("/login", adc.Login)
		admin.POST("/logout", adc.Logout)

		guarded := admin.Group("", middleware.RequireAdmin(opts.Admin, opts.Storage))
		{
			guarded.GET("/dashboard", adc.Dashboard())
			guarded.GET("/bookings", adc.Bookings())
			guarded.GET("/bookings/export", adc.ExportBookings)
			guarded.GET("/rooms", adc.Rooms())
			guarded.GET("/users", adc.Users())
		}
	}

	return r
}
