package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/traveltrack/traveltrack/internal/auth"
	"github.com/traveltrack/traveltrack/internal/cache"
	"github.com/traveltrack/traveltrack/internal/config"
	"github.com/traveltrack/traveltrack/internal/http/handlers"
	"github.com/traveltrack/traveltrack/internal/http/middlewares"
	"github.com/traveltrack/traveltrack/internal/images"
	"github.com/traveltrack/traveltrack/internal/observability"
	"github.com/traveltrack/traveltrack/internal/repo/postgres"
	"github.com/traveltrack/traveltrack/internal/weather"
)

// Deps carries everything the route table needs. Construction happens in
// cmd/api; the router only wires.
type Deps struct {
	Cfg          config.Config
	JWT          *auth.Manager
	Users        *postgres.UsersRepo
	Trips        *postgres.TripsRepo
	Budgets      *postgres.BudgetsRepo
	Itineraries  *postgres.ItinerariesRepo
	PackingLists *postgres.PackingListsRepo
	Destinations *postgres.DestinationsRepo
	Images       images.Store
	Queue        handlers.JobEnqueuer
	Weather      *weather.Client
	WeatherCache *cache.Cache
	Prom         *observability.Prom
	PromRegistry *prometheus.Registry
	PingDB       func() error
	PingRedis    func() error
}

func NewRouter(deps Deps) *gin.Engine {
	if deps.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(deps.Cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(deps.Cfg.MaxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(deps.Prom.GinHandleMiddleware())
	r.Use(otelgin.Middleware("traveltrack-api"))

	health := handlers.NewHealthHandler(deps.PingDB, deps.PingRedis)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.PromRegistry, promhttp.HandlerOpts{})))

	authMW := middlewares.NewAuthMiddleware(deps.JWT)
	requireAuth := authMW.RequireAuth()

	authHandler := handlers.NewAuthHandler(deps.Users, deps.JWT, deps.Queue, deps.Cfg)
	usersHandler := handlers.NewUsersHandler(deps.Users, deps.Trips, deps.Images)
	tripsHandler := handlers.NewTripsHandler(deps.Trips, deps.Users, deps.Destinations, deps.Images, deps.Queue,
		deps.Budgets, deps.Itineraries, deps.PackingLists)
	budgetsHandler := handlers.NewBudgetsHandler(deps.Budgets, deps.Trips)
	itinerariesHandler := handlers.NewItinerariesHandler(deps.Itineraries, deps.Trips)
	packingHandler := handlers.NewPackingListsHandler(deps.PackingLists, deps.Trips)
	destinationsHandler := handlers.NewDestinationsHandler(deps.Destinations, deps.Users, deps.Images)
	weatherHandler := handlers.NewWeatherHandler(deps.Weather, deps.WeatherCache, deps.Prom)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/verify-email", authHandler.VerifyEmail)
		authGroup.POST("/resend-verification", authHandler.ResendVerification)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/verify-reset-code", authHandler.VerifyResetCode)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.GET("/me", requireAuth, authHandler.Me)
	}

	users := api.Group("/users", requireAuth)
	{
		users.GET("/stats", usersHandler.Stats)
		users.PUT("/details", usersHandler.UpdateDetails)
		users.PUT("/password", usersHandler.UpdatePassword)
		users.PUT("/preferences", usersHandler.UpdatePreferences)
		users.POST("/avatar", usersHandler.UploadAvatar)
		users.DELETE("/account", usersHandler.DeleteAccount)

		admin := users.Group("/admin", authMW.RequireRole("admin"))
		{
			admin.GET("", usersHandler.AdminListUsers)
			admin.GET("/:id", usersHandler.AdminGetUser)
			admin.PUT("/:id", usersHandler.AdminUpdateUser)
			admin.DELETE("/:id", usersHandler.AdminDeleteUser)
		}
	}

	trips := api.Group("/trips", requireAuth)
	{
		trips.POST("", tripsHandler.Create)
		trips.GET("", tripsHandler.List)
		trips.GET("/stats", tripsHandler.Stats)
		trips.GET("/:tripId", tripsHandler.Get)
		trips.PUT("/:tripId", tripsHandler.Update)
		trips.DELETE("/:tripId", tripsHandler.Delete)
		trips.POST("/:tripId/cover-image", tripsHandler.UploadCoverImage)
		trips.POST("/:tripId/collaborators", tripsHandler.AddCollaborator)
		trips.DELETE("/:tripId/collaborators/:collaboratorId", tripsHandler.RemoveCollaborator)
	}

	tripScoped := api.Group("/trips/:tripId", requireAuth)
	{
		tripScoped.POST("/budgets", budgetsHandler.Create)
		tripScoped.GET("/budgets", budgetsHandler.ListByTrip)
		tripScoped.GET("/budgets/stats", budgetsHandler.Stats)

		tripScoped.POST("/itineraries", itinerariesHandler.Create)
		tripScoped.GET("/itineraries", itinerariesHandler.ListByTrip)
		tripScoped.GET("/itineraries/stats", itinerariesHandler.Stats)

		tripScoped.POST("/packing-lists", packingHandler.Create)
		tripScoped.POST("/packing-lists/from-template", packingHandler.GenerateFromTemplate)
		tripScoped.GET("/packing-lists", packingHandler.ListByTrip)
		tripScoped.GET("/packing-lists/stats", packingHandler.Stats)
	}

	budgets := api.Group("/budgets", requireAuth)
	{
		budgets.GET("/:id", budgetsHandler.Get)
		budgets.PUT("/:id", budgetsHandler.Update)
		budgets.DELETE("/:id", budgetsHandler.Delete)
		budgets.POST("/:id/items", budgetsHandler.AddItem)
		budgets.PUT("/:id/items/:itemId", budgetsHandler.UpdateItem)
		budgets.DELETE("/:id/items/:itemId", budgetsHandler.DeleteItem)
		budgets.PATCH("/:id/items/:itemId/toggle-paid", budgetsHandler.ToggleItemPaid)
	}

	itineraries := api.Group("/itineraries", requireAuth)
	{
		itineraries.GET("/:id", itinerariesHandler.Get)
		itineraries.PUT("/:id", itinerariesHandler.Update)
		itineraries.DELETE("/:id", itinerariesHandler.Delete)
		itineraries.POST("/:id/days", itinerariesHandler.AddDay)
		itineraries.POST("/:id/days/:dayId/activities", itinerariesHandler.AddActivity)
		itineraries.PUT("/:id/days/:dayId/activities/:activityId", itinerariesHandler.UpdateActivity)
		itineraries.DELETE("/:id/days/:dayId/activities/:activityId", itinerariesHandler.DeleteActivity)
		itineraries.PATCH("/:id/days/:dayId/activities/:activityId/toggle-completion", itinerariesHandler.ToggleActivityCompletion)
		itineraries.PUT("/:id/days/:dayId/activities/reorder", itinerariesHandler.ReorderActivities)
	}

	packingLists := api.Group("/packing-lists", requireAuth)
	{
		packingLists.GET("/:id", packingHandler.Get)
		packingLists.PUT("/:id", packingHandler.Update)
		packingLists.DELETE("/:id", packingHandler.Delete)
		packingLists.POST("/:id/items", packingHandler.AddItem)
		packingLists.PUT("/:id/items/:itemId", packingHandler.UpdateItem)
		packingLists.DELETE("/:id/items/:itemId", packingHandler.DeleteItem)
		packingLists.PATCH("/:id/items/:itemId/toggle-packed", packingHandler.ToggleItemPacked)
	}

	destinations := api.Group("/destinations")
	{
		destinations.GET("", destinationsHandler.List)
		destinations.GET("/popular", destinationsHandler.Popular)
		destinations.GET("/search", destinationsHandler.Search)
		destinations.GET("/:id", destinationsHandler.Get)
		destinations.GET("/:id/reviews", destinationsHandler.ListReviews)

		destinations.POST("", requireAuth, destinationsHandler.Create)
		destinations.PUT("/:id", requireAuth, destinationsHandler.Update)
		destinations.DELETE("/:id", requireAuth, destinationsHandler.Delete)
		destinations.POST("/:id/ratings", requireAuth, destinationsHandler.AddQuickRating)
		destinations.POST("/:id/reviews", requireAuth, destinationsHandler.AddReview)
		destinations.PUT("/:id/reviews/:reviewId", requireAuth, destinationsHandler.UpdateReview)
		destinations.DELETE("/:id/reviews/:reviewId", requireAuth, destinationsHandler.DeleteReview)
		destinations.PATCH("/:id/reviews/:reviewId/helpful", requireAuth, destinationsHandler.ToggleReviewHelpful)
		destinations.POST("/:id/images", requireAuth, destinationsHandler.UploadImage)
	}

	weatherLimiter := middlewares.NewRateLimiter(deps.Cfg.WeatherRateLimit, time.Minute)

	weatherGroup := api.Group("/weather", requireAuth, weatherLimiter.RateLimiterMiddleware(middlewares.KeyByUserOrIP))
	{
		weatherGroup.GET("/current", weatherHandler.Current)
		weatherGroup.GET("/forecast", weatherHandler.Forecast)
		weatherGroup.GET("/alerts", weatherHandler.Alerts)
		weatherGroup.GET("/recommendations", weatherHandler.Recommendations)
	}

	return r
}
