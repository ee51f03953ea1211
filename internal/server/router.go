package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/prashantttzz/experimentlabs/internal/http/handlers"
	"github.com/prashantttzz/experimentlabs/internal/http/middleware"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	AuthHandler     *handlers.AuthHandler
	GoalHandler     *handlers.GoalHandler
	ChatHandler     *handlers.ChatHandler
	RealtimeHandler *handlers.RealtimeHandler
	HealthHandler   *handlers.HealthHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("experimentlabs"))
	router.Use(middleware.CORS())
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Public
	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.GET("/auth/me", cfg.AuthHandler.Me)

	goal := protected.Group("/goal")
	{
		goal.POST("/new", cfg.GoalHandler.Create)
		goal.GET("/all", cfg.GoalHandler.List)
		goal.GET("/:goalId", cfg.GoalHandler.Get)
		goal.POST("/:goalId/chunks/:chunkId/assess", cfg.GoalHandler.Assess)
	}

	chunk := protected.Group("/chunk")
	{
		chunk.GET("/:chunkId/chathistory", cfg.ChatHandler.History)
		chunk.POST("/:chunkId/message", cfg.ChatHandler.SendMessage)
	}

	protected.GET("/sse/stream", cfg.RealtimeHandler.Stream)

	return router
}
