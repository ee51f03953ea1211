package app

import (
	"github.com/gin-gonic/gin"

	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
	"github.com/prashantttzz/experimentlabs/internal/server"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:             log,
		AuthHandler:     handlers.Auth,
		GoalHandler:     handlers.Goal,
		ChatHandler:     handlers.Chat,
		RealtimeHandler: handlers.Realtime,
		HealthHandler:   handlers.Health,
		AuthMiddleware:  middleware.Auth,
	})
}
