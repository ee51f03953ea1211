package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalStatus is a closed set; every transition site switches exhaustively
// on it rather than comparing raw strings.
type GoalStatus string

const (
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalCompleted  GoalStatus = "COMPLETED"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalInProgress, GoalCompleted:
		return true
	default:
		return false
	}
}

// Goal is a user's top-level learning objective, decomposed into an
// ordered sequence of chunks. While a goal is IN_PROGRESS exactly one of
// its chunks is CURRENT; when the last chunk completes the goal flips to
// COMPLETED exactly once.
type Goal struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description string     `gorm:"type:text;not null;column:description" json:"description"`
	Timeline    string     `gorm:"column:timeline" json:"timeline"`
	Status      GoalStatus `gorm:"column:status;not null;default:'IN_PROGRESS';index" json:"status"`

	Chunks []Chunk `gorm:"foreignKey:GoalID;references:ID" json:"chunks,omitempty"`

	// Progress is computed at read time, never stored.
	Progress int `gorm:"-" json:"progress"`

	CreatedAt time.Time      `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Goal) TableName() string { return "goal" }
