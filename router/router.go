package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/guestlist-app/controllers"
	"github.com/yeremiapane/guestlist-app/middlewares"
	"github.com/yeremiapane/guestlist-app/models"
	"github.com/yeremiapane/guestlist-app/utils"
)

func SetupRouter(deps *Dependencies) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		utils.RespondMessage(c, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		utils.RespondMessage(c, http.StatusNotFound, "route not found")
	})

	// Apply security middlewares
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(deps.Config.CORSOrigins))

	// Inisialisasi controller
	guestCtrl := controllers.NewGuestController(deps.Guests, deps.Calendar)
	clubCtrl := controllers.NewClubController(deps.Clubs)
	analyticsCtrl := controllers.NewAnalyticsController(deps.Analytics, deps.Monitor)
	userCtrl := controllers.NewUserController(deps.Auth)
	liveCtrl := controllers.NewLiveController(deps.Hub, deps.Config.CORSOrigins)

	limited := deps.Limiter.RateLimit()

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	{
		api.GET("/event-nights", guestCtrl.EventNights)
		api.GET("/clubs", clubCtrl.AvailableClubs)
		api.POST("/signup", limited, guestCtrl.SignUp)

		guests := api.Group("/guests", middlewares.NoStore())
		guests.GET("/:id", guestCtrl.GetGuest)
		guests.GET("/:id/voucher.png", guestCtrl.VoucherQR)

		api.GET("/vouchers/:code", middlewares.NoStore(), guestCtrl.GetByVoucher)
		api.POST("/checkin", limited, middlewares.CheckInLoggerMiddleware(), guestCtrl.CheckIn)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/api/admin", middlewares.NoStore())
	admin.POST("/login", limited, userCtrl.Login)

	auth := admin.Group("")
	auth.Use(middlewares.AuthMiddleware(deps.Tokens))
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)
		auth.POST("/users", middlewares.RoleCheck(models.RoleAdmin), userCtrl.Register)

		auth.GET("/guests", guestCtrl.ListGuests)
		auth.POST("/guests/:id/checkin", middlewares.CheckInLoggerMiddleware(), guestCtrl.CheckInByID)
		auth.GET("/analytics", analyticsCtrl.GetAnalytics)

		auth.GET("/clubs", clubCtrl.ListClubs)
		auth.GET("/clubs/:id", clubCtrl.GetClub)

		clubs := auth.Group("/clubs", middlewares.RoleCheck(models.RoleAdmin))
		clubs.POST("", clubCtrl.CreateClub)
		clubs.PUT("/:id", clubCtrl.UpdateClub)
		clubs.DELETE("/:id", clubCtrl.DeleteClub)
	}

	// WebSocket endpoint dengan middleware khusus
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(deps.Tokens), liveCtrl.Feed)

	return r
}
