package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	learningrepo "github.com/prashantttzz/experimentlabs/internal/data/repos/learning"
	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
	pkgerrors "github.com/prashantttzz/experimentlabs/internal/pkg/errors"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

// GoalService owns goal creation and read models. Creation is atomic: the
// goal row and its full chunk sequence commit together or not at all.
type GoalService interface {
	CreateGoal(ctx context.Context, userID uuid.UUID, title, description, timeline string) (*types.Goal, error)
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*types.Goal, error)
	GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*types.Goal, error)
}

type goalService struct {
	log        *logger.Logger
	db         *gorm.DB
	goals      learningrepo.GoalRepo
	chunks     learningrepo.ChunkRepo
	curriculum CurriculumService
}

func NewGoalService(
	log *logger.Logger,
	db *gorm.DB,
	goals learningrepo.GoalRepo,
	chunks learningrepo.ChunkRepo,
	curriculum CurriculumService,
) GoalService {
	return &goalService{
		log:        log.With("service", "GoalService"),
		db:         db,
		goals:      goals,
		chunks:     chunks,
		curriculum: curriculum,
	}
}

func (s *goalService) CreateGoal(ctx context.Context, userID uuid.UUID, title, description, timeline string) (*types.Goal, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return nil, fmt.Errorf("%w: title and description are required", pkgerrors.ErrValidation)
	}
	timeline = strings.TrimSpace(timeline)
	if timeline == "" {
		timeline = "6 weeks"
	}

	// Generation happens before the transaction and cannot fail; a broken
	// generator yields the default sequence.
	specs := s.curriculum.Generate(ctx, title, description, timeline)

	goal := &types.Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Timeline:    timeline,
		Status:      types.GoalInProgress,
	}
	chunks := make([]*types.Chunk, 0, len(specs))
	for i, spec := range specs {
		status := types.ChunkLocked
		if i == 0 {
			status = types.ChunkCurrent
		}
		chunks = append(chunks, &types.Chunk{
			ID:          uuid.New(),
			GoalID:      goal.ID,
			Order:       i + 1,
			Title:       spec.Title,
			Description: spec.Description,
			Week:        spec.Week,
			Duration:    spec.Duration,
			Difficulty:  spec.Difficulty,
			Status:      status,
			Objectives:  mustJSON(spec.Objectives),
			Skills:      mustJSON(spec.Skills),
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.WithTx(ctx, tx)
		if _, err := s.goals.Create(dbc, []*types.Goal{goal}); err != nil {
			return fmt.Errorf("create goal: %w", err)
		}
		if _, err := s.chunks.Create(dbc, chunks); err != nil {
			return fmt.Errorf("create chunks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	goal.Chunks = derefChunks(chunks)
	goal.Progress = computeProgress(chunks)
	s.log.Info("goal created", "goal_id", goal.ID.String(), "chunks", len(chunks))
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]*types.Goal, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	dbc := dbctx.New(ctx)
	goals, err := s.goals.ListByUser(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	for _, g := range goals {
		chunks, err := s.chunks.ListByGoal(dbc, g.ID)
		if err != nil {
			return nil, fmt.Errorf("list chunks for goal %s: %w", g.ID, err)
		}
		g.Chunks = derefChunks(chunks)
		g.Progress = computeProgress(chunks)
	}
	return goals, nil
}

func (s *goalService) GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*types.Goal, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.ErrUnauthorized
	}
	dbc := dbctx.New(ctx)
	goal, err := s.goals.GetByIDForUser(dbc, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	if goal == nil {
		return nil, pkgerrors.ErrNotFound
	}
	chunks, err := s.chunks.ListByGoal(dbc, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	goal.Chunks = derefChunks(chunks)
	goal.Progress = computeProgress(chunks)
	return goal, nil
}

// computeProgress is round(100 * completed / total); an empty sequence is 0.
func computeProgress(chunks []*types.Chunk) int {
	if len(chunks) == 0 {
		return 0
	}
	completed := 0
	for _, c := range chunks {
		if c.Status == types.ChunkCompleted {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(chunks))))
}

func derefChunks(chunks []*types.Chunk) []types.Chunk {
	out := make([]types.Chunk, 0, len(chunks))
	for _, c := range chunks {
		out = append(out, *c)
	}
	return out
}

func mustJSON(v []string) datatypes.JSON {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}
