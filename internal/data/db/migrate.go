package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/prashantttzz/experimentlabs/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},

		&types.Goal{},
		&types.Chunk{},

		&types.ChatMessage{},
	)
}

func (s *Service) AutoMigrateAll() error {
	if err := AutoMigrateAll(s.db); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
