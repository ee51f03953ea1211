// Package realtime fans domain events out to connected SSE clients, with
// an optional Redis bus so every instance sees every publish.
package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

type Event string

const (
	// EventChatMessage carries a tutor reply (or a transient error notice)
	// for a chunk conversation.
	EventChatMessage Event = "ReceiveMessage"
	// EventChunkCompleted fires when an assessment commit completes a chunk.
	EventChunkCompleted Event = "ChunkCompleted"
	// EventGoalCompleted fires when the last chunk of a goal completes.
	EventGoalCompleted Event = "GoalCompleted"
)

// Message is one event addressed to a single user's stream.
type Message struct {
	UserID uuid.UUID       `json:"user_id"`
	Event  Event           `json:"event"`
	Data   json.RawMessage `json:"data"`
}

// NewMessage marshals payload into a Message; marshal failures return an
// error rather than a half-built message.
func NewMessage(userID uuid.UUID, event Event, payload any) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{UserID: userID, Event: event, Data: data}, nil
}

// Publisher is the service-facing side of the realtime layer.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}
