package chat

import (
	"time"

	"github.com/google/uuid"
)

type SenderRole string

const (
	SenderUser SenderRole = "USER"
	SenderAI   SenderRole = "AI"
)

func (r SenderRole) Valid() bool {
	switch r {
	case SenderUser, SenderAI:
		return true
	default:
		return false
	}
}

// ChatMessage is an append-only tutoring turn attached to a chunk.
// Ordering is by created_at ascending; rows are never mutated or deleted.
type ChatMessage struct {
	ID      uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ChunkID uuid.UUID  `gorm:"type:uuid;not null;index" json:"chunk_id"`
	Sender  SenderRole `gorm:"column:sender;not null;index" json:"sender"`
	Content string     `gorm:"type:text;not null;column:content" json:"content"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (ChatMessage) TableName() string { return "chat_message" }
