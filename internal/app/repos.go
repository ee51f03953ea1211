package app

import (
	"gorm.io/gorm"

	chatrepo "github.com/prashantttzz/experimentlabs/internal/data/repos/chat"
	learningrepo "github.com/prashantttzz/experimentlabs/internal/data/repos/learning"
	userrepo "github.com/prashantttzz/experimentlabs/internal/data/repos/user"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

type Repos struct {
	User        userrepo.Repo
	Goal        learningrepo.GoalRepo
	Chunk       learningrepo.ChunkRepo
	ChatMessage chatrepo.MessageRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:        userrepo.NewRepo(db, log),
		Goal:        learningrepo.NewGoalRepo(db, log),
		Chunk:       learningrepo.NewChunkRepo(db, log),
		ChatMessage: chatrepo.NewMessageRepo(db, log),
	}
}
