package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prashantttzz/experimentlabs/internal/clients/gemini"
	chatrepo "github.com/prashantttzz/experimentlabs/internal/data/repos/chat"
	learningrepo "github.com/prashantttzz/experimentlabs/internal/data/repos/learning"
	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
	pkgerrors "github.com/prashantttzz/experimentlabs/internal/pkg/errors"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
	"github.com/prashantttzz/experimentlabs/internal/realtime"
)

const tutorFailureReply = "Sorry, I encountered an error. Please try again."

// ChatService runs the per-chunk tutoring conversation. The transcript is
// append-only; a tutor failure surfaces as a transient apologetic reply
// that is pushed to the stream but never persisted.
type ChatService interface {
	History(ctx context.Context, userID, chunkID uuid.UUID) ([]*types.ChatMessage, error)
	SendMessage(ctx context.Context, userID, chunkID uuid.UUID, content string) (*types.ChatMessage, error)
}

type chatService struct {
	log       *logger.Logger
	db        *gorm.DB
	goals     learningrepo.GoalRepo
	chunks    learningrepo.ChunkRepo
	messages  chatrepo.MessageRepo
	llm       gemini.Client
	publisher realtime.Publisher
}

func NewChatService(
	log *logger.Logger,
	db *gorm.DB,
	goals learningrepo.GoalRepo,
	chunks learningrepo.ChunkRepo,
	messages chatrepo.MessageRepo,
	llm gemini.Client,
	publisher realtime.Publisher,
) ChatService {
	return &chatService{
		log:       log.With("service", "ChatService"),
		db:        db,
		goals:     goals,
		chunks:    chunks,
		messages:  messages,
		llm:       llm,
		publisher: publisher,
	}
}

func (s *chatService) History(ctx context.Context, userID, chunkID uuid.UUID) ([]*types.ChatMessage, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	dbc := dbctx.New(ctx)
	chunk, err := s.chunks.GetByIDForUser(dbc, chunkID, userID)
	if err != nil {
		return nil, fmt.Errorf("load chunk: %w", err)
	}
	if chunk == nil {
		return nil, pkgerrors.ErrNotFound
	}
	return s.messages.ListByChunk(dbc, chunkID)
}

func (s *chatService) SendMessage(ctx context.Context, userID, chunkID uuid.UUID, content string) (*types.ChatMessage, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: message content is required", pkgerrors.ErrValidation)
	}

	dbc := dbctx.New(ctx)
	chunk, err := s.chunks.GetByIDForUser(dbc, chunkID, userID)
	if err != nil {
		return nil, fmt.Errorf("load chunk: %w", err)
	}
	if chunk == nil {
		return nil, pkgerrors.ErrNotFound
	}
	goal, err := s.goals.GetByIDForUser(dbc, chunk.GoalID, userID)
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	if goal == nil {
		return nil, pkgerrors.ErrNotFound
	}

	prior, err := s.messages.ListByChunk(dbc, chunkID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	userMsg := &types.ChatMessage{
		ID:      uuid.New(),
		ChunkID: chunkID,
		Sender:  types.SenderUser,
		Content: content,
	}
	if _, err := s.messages.Create(dbc, []*types.ChatMessage{userMsg}); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	reply, err := s.llm.Chat(ctx, tutorSystemPrompt(goal, chunk), historyToTurns(prior), content)
	if err != nil {
		// The user's message is already committed; hand back a transient
		// apology instead of failing the turn.
		s.log.Warn("tutor reply failed", "chunk_id", chunkID.String(), "error", err)
		transient := &types.ChatMessage{
			ID:        uuid.New(),
			ChunkID:   chunkID,
			Sender:    types.SenderAI,
			Content:   tutorFailureReply,
			CreatedAt: time.Now(),
		}
		s.notifyMessage(ctx, userID, transient)
		return transient, nil
	}

	aiMsg := &types.ChatMessage{
		ID:      uuid.New(),
		ChunkID: chunkID,
		Sender:  types.SenderAI,
		Content: reply,
	}
	if _, err := s.messages.Create(dbc, []*types.ChatMessage{aiMsg}); err != nil {
		return nil, fmt.Errorf("save reply: %w", err)
	}
	s.notifyMessage(ctx, userID, aiMsg)
	return aiMsg, nil
}

func (s *chatService) notifyMessage(ctx context.Context, userID uuid.UUID, msg *types.ChatMessage) {
	if s.publisher == nil {
		return
	}
	out, err := realtime.NewMessage(userID, realtime.EventChatMessage, msg)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, out); err != nil {
		s.log.Warn("publish chat message failed", "error", err)
	}
}

func tutorSystemPrompt(goal *types.Goal, chunk *types.Chunk) string {
	var b strings.Builder
	b.WriteString("You are an expert, friendly, and encouraging AI tutor.\n")
	fmt.Fprintf(&b, "The student's overall learning goal is: %q.\n", goal.Title)
	fmt.Fprintf(&b, "They are currently working on the module: %q (%s).\n\n", chunk.Title, chunk.Description)
	b.WriteString("Your role:\n")
	b.WriteString("- Answer the student's questions clearly and patiently, staying focused on the current module.\n")
	b.WriteString("- Ask occasional follow-up questions to check their understanding.\n")
	b.WriteString("- Keep answers concise and practical.\n\n")
	b.WriteString("Format all responses using markdown: use **bold** for key terms, bullet points for lists, and fenced code blocks for any code.")
	return b.String()
}

func historyToTurns(msgs []*types.ChatMessage) []gemini.Turn {
	turns := make([]gemini.Turn, 0, len(msgs))
	for _, m := range msgs {
		role := gemini.RoleUser
		if m.Sender == types.SenderAI {
			role = gemini.RoleModel
		}
		turns = append(turns, gemini.Turn{Role: role, Content: m.Content})
	}
	return turns
}
