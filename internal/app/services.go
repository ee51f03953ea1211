package app

import (
	"gorm.io/gorm"

	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
	"github.com/prashantttzz/experimentlabs/internal/realtime"
	"github.com/prashantttzz/experimentlabs/internal/services"
)

type Services struct {
	Auth        services.AuthService
	Curriculum  services.CurriculumService
	Evaluator   services.EvaluatorService
	Goal        services.GoalService
	Progression services.ProgressionService
	Chat        services.ChatService
}

func wireServices(db *gorm.DB, log *logger.Logger, repos Repos, clients Clients, hub *realtime.Hub) (Services, error) {
	log.Info("Wiring services...")

	authService, err := services.NewAuthService(log, repos.User)
	if err != nil {
		return Services{}, err
	}

	curriculumService := services.NewCurriculumService(log, clients.Gemini)
	evaluatorService := services.NewEvaluatorService(log, clients.Gemini)
	goalService := services.NewGoalService(log, db, repos.Goal, repos.Chunk, curriculumService)
	progressionService := services.NewProgressionService(log, db, repos.Goal, repos.Chunk, repos.ChatMessage, evaluatorService, hub)
	chatService := services.NewChatService(log, db, repos.Goal, repos.Chunk, repos.ChatMessage, clients.Gemini, hub)

	return Services{
		Auth:        authService,
		Curriculum:  curriculumService,
		Evaluator:   evaluatorService,
		Goal:        goalService,
		Progression: progressionService,
		Chat:        chatService,
	}, nil
}
