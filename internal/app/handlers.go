package app

import (
	"github.com/prashantttzz/experimentlabs/internal/http/handlers"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
	"github.com/prashantttzz/experimentlabs/internal/realtime"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Goal     *handlers.GoalHandler
	Chat     *handlers.ChatHandler
	Realtime *handlers.RealtimeHandler
	Health   *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, services Services, hub *realtime.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:     handlers.NewAuthHandler(services.Auth),
		Goal:     handlers.NewGoalHandler(services.Goal, services.Progression),
		Chat:     handlers.NewChatHandler(services.Chat),
		Realtime: handlers.NewRealtimeHandler(hub),
		Health:   handlers.NewHealthHandler(),
	}
}
