package learning

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ChunkStatus transitions are monotonic: LOCKED -> CURRENT -> COMPLETED.
// Only the progression service mutates it.
type ChunkStatus string

const (
	ChunkLocked    ChunkStatus = "LOCKED"
	ChunkCurrent   ChunkStatus = "CURRENT"
	ChunkCompleted ChunkStatus = "COMPLETED"
)

func (s ChunkStatus) Valid() bool {
	switch s {
	case ChunkLocked, ChunkCurrent, ChunkCompleted:
		return true
	default:
		return false
	}
}

// Chunk is one unit of curriculum inside a goal. Order is 1-based, unique
// and contiguous within a goal and is the sole source of truth for the
// sequence.
type Chunk struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GoalID uuid.UUID `gorm:"type:uuid;not null;index;index:idx_chunk_goal_order,unique,priority:1" json:"goal_id"`

	Order int `gorm:"column:sequence_order;not null;index:idx_chunk_goal_order,unique,priority:2" json:"order"`

	Title       string      `gorm:"not null;column:title" json:"title"`
	Description string      `gorm:"type:text;column:description" json:"description"`
	Week        string      `gorm:"column:week" json:"week"`
	Duration    string      `gorm:"column:duration" json:"duration"`
	Difficulty  string      `gorm:"column:difficulty" json:"difficulty"`
	Status      ChunkStatus `gorm:"column:status;not null;default:'LOCKED';index" json:"status"`

	Objectives datatypes.JSON `gorm:"type:jsonb;column:objectives;not null;default:'[]'" json:"objectives"`
	Skills     datatypes.JSON `gorm:"type:jsonb;column:skills;not null;default:'[]'" json:"skills"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Chunk) TableName() string { return "chunk" }
