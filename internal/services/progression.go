package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	chatrepo "github.com/prashantttzz/experimentlabs/internal/data/repos/chat"
	learningrepo "github.com/prashantttzz/experimentlabs/internal/data/repos/learning"
	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
	pkgerrors "github.com/prashantttzz/experimentlabs/internal/pkg/errors"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
	"github.com/prashantttzz/experimentlabs/internal/realtime"
)

// minAssessmentMessages is the conversation floor for requesting an
// assessment, counting both user and tutor messages.
const minAssessmentMessages = 2

// AssessmentResult is what the caller gets back when the request itself was
// well-formed. Passed=false carries the evaluator's feedback and leaves all
// state untouched.
type AssessmentResult struct {
	Passed        bool         `json:"passed"`
	Feedback      string       `json:"feedback"`
	GoalCompleted bool         `json:"goal_completed"`
	NextChunk     *types.Chunk `json:"next_chunk,omitempty"`
}

// ProgressionService is the one writer of chunk and goal status. Every
// advance goes through RequestAssessment; nothing else mutates progression
// state.
type ProgressionService interface {
	RequestAssessment(ctx context.Context, userID, goalID, chunkID uuid.UUID) (*AssessmentResult, error)
}

type progressionService struct {
	log       *logger.Logger
	db        *gorm.DB
	goals     learningrepo.GoalRepo
	chunks    learningrepo.ChunkRepo
	messages  chatrepo.MessageRepo
	evaluator EvaluatorService
	publisher realtime.Publisher
}

func NewProgressionService(
	log *logger.Logger,
	db *gorm.DB,
	goals learningrepo.GoalRepo,
	chunks learningrepo.ChunkRepo,
	messages chatrepo.MessageRepo,
	evaluator EvaluatorService,
	publisher realtime.Publisher,
) ProgressionService {
	return &progressionService{
		log:       log.With("service", "ProgressionService"),
		db:        db,
		goals:     goals,
		chunks:    chunks,
		messages:  messages,
		evaluator: evaluator,
		publisher: publisher,
	}
}

// RequestAssessment checks eligibility, grades the conversation, and on a
// passing verdict commits the advance. The evaluator runs outside the
// transaction; the commit re-reads the chunk and transitions it with a
// conditional update, so concurrent requests for the same chunk produce
// exactly one advance and the rest fail with ErrConflict.
func (s *progressionService) RequestAssessment(ctx context.Context, userID, goalID, chunkID uuid.UUID) (*AssessmentResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	ctx, span := otel.Tracer("progression").Start(ctx, "RequestAssessment")
	defer span.End()
	span.SetAttributes(
		attribute.String("goal_id", goalID.String()),
		attribute.String("chunk_id", chunkID.String()),
	)

	dbc := dbctx.New(ctx)

	chunk, err := s.chunks.GetByIDForUser(dbc, chunkID, userID)
	if err != nil {
		return nil, fmt.Errorf("load chunk: %w", err)
	}
	if chunk == nil || chunk.GoalID != goalID {
		return nil, pkgerrors.ErrNotFound
	}

	switch chunk.Status {
	case types.ChunkCurrent:
	case types.ChunkLocked:
		return nil, fmt.Errorf("%w: this module is still locked", pkgerrors.ErrNotEligible)
	case types.ChunkCompleted:
		return nil, fmt.Errorf("%w: this module is already completed", pkgerrors.ErrNotEligible)
	default:
		return nil, fmt.Errorf("%w: module is not in an assessable state", pkgerrors.ErrNotEligible)
	}

	count, err := s.messages.CountByChunk(dbc, chunkID)
	if err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	if count < minAssessmentMessages {
		return nil, fmt.Errorf("%w: have a conversation with the tutor before requesting an assessment", pkgerrors.ErrNotEligible)
	}

	history, err := s.messages.ListByChunk(dbc, chunkID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	verdict := s.evaluator.Evaluate(ctx, chunk, history)
	if !verdict.Passed() {
		s.log.Info("assessment failed", "chunk_id", chunkID.String())
		return &AssessmentResult{Passed: false, Feedback: verdict.Feedback}, nil
	}

	result := &AssessmentResult{Passed: true, Feedback: verdict.Feedback}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txc := dbctx.WithTx(ctx, tx)

		// Re-read inside the transaction: the pre-check and evaluator ran
		// on a snapshot that may already be stale.
		fresh, err := s.chunks.GetByID(txc, chunkID)
		if err != nil {
			return fmt.Errorf("re-read chunk: %w", err)
		}
		if fresh == nil || fresh.Status != types.ChunkCurrent {
			return pkgerrors.ErrConflict
		}

		ok, err := s.chunks.SetStatusIf(txc, chunkID, types.ChunkCurrent, types.ChunkCompleted)
		if err != nil {
			return fmt.Errorf("complete chunk: %w", err)
		}
		if !ok {
			return pkgerrors.ErrConflict
		}

		next, err := s.chunks.GetByGoalAndOrder(txc, goalID, chunk.Order+1)
		if err != nil {
			return fmt.Errorf("load next chunk: %w", err)
		}
		if next != nil {
			ok, err := s.chunks.SetStatusIf(txc, next.ID, types.ChunkLocked, types.ChunkCurrent)
			if err != nil {
				return fmt.Errorf("unlock next chunk: %w", err)
			}
			if !ok {
				return pkgerrors.ErrConflict
			}
			next.Status = types.ChunkCurrent
			result.NextChunk = next
			return nil
		}

		if err := s.goals.SetStatus(txc, goalID, types.GoalCompleted); err != nil {
			return fmt.Errorf("complete goal: %w", err)
		}
		result.GoalCompleted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAdvance(ctx, userID, goalID, chunkID, result)
	s.log.Info("assessment passed",
		"chunk_id", chunkID.String(),
		"goal_completed", result.GoalCompleted,
	)
	return result, nil
}

// notifyAdvance is best effort; a dropped event never fails the request.
func (s *progressionService) notifyAdvance(ctx context.Context, userID, goalID, chunkID uuid.UUID, result *AssessmentResult) {
	if s.publisher == nil {
		return
	}
	msg, err := realtime.NewMessage(userID, realtime.EventChunkCompleted, map[string]string{
		"goal_id":  goalID.String(),
		"chunk_id": chunkID.String(),
	})
	if err == nil {
		if err := s.publisher.Publish(ctx, msg); err != nil {
			s.log.Warn("publish chunk completion failed", "error", err)
		}
	}
	if !result.GoalCompleted {
		return
	}
	msg, err = realtime.NewMessage(userID, realtime.EventGoalCompleted, map[string]string{
		"goal_id": goalID.String(),
	})
	if err == nil {
		if err := s.publisher.Publish(ctx, msg); err != nil {
			s.log.Warn("publish goal completion failed", "error", err)
		}
	}
}
