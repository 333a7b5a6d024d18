package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/places-backend/internal/handlers"
	"github.com/yungbote/places-backend/internal/middleware"
)

type RouterConfig struct {
	PlaceHandler   *handlers.PlaceHandler
	UserHandler    *handlers.UserHandler
	AuthMiddleware *middleware.AuthMiddleware

	// UploadsDir serves stored images statically when the local object
	// store is active. Empty when a bucket store is configured.
	UploadsDir string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("places-backend"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "X-Requested-With", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: false,
	}))

	if cfg.UploadsDir != "" {
		router.Static("/uploads/images", cfg.UploadsDir)
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.GET("/places/:pid", cfg.PlaceHandler.GetPlaceByID)
		api.GET("/places/user/:uid", cfg.PlaceHandler.GetPlacesByUserID)
		api.GET("/users", cfg.UserHandler.GetUsers)
		api.POST("/users/signup", cfg.UserHandler.Signup)
		api.POST("/users/login", cfg.UserHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Places
	protected.POST("/places", cfg.PlaceHandler.CreatePlace)
	protected.PATCH("/places/:pid", cfg.PlaceHandler.UpdatePlace)
	protected.DELETE("/places/:pid", cfg.PlaceHandler.DeletePlace)

	return router
}
