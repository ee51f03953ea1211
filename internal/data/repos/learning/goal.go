package learning

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

type GoalRepo interface {
	Create(dbc dbctx.Context, rows []*types.Goal) ([]*types.Goal, error)
	// GetByIDForUser resolves a goal only when it is owned by userID; the
	// ownership check is part of the lookup predicate so an unowned id is
	// indistinguishable from an absent one.
	GetByIDForUser(dbc dbctx.Context, goalID, userID uuid.UUID) (*types.Goal, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Goal, error)
	SetStatus(dbc dbctx.Context, goalID uuid.UUID, status types.GoalStatus) error
}

type goalRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoalRepo(db *gorm.DB, log *logger.Logger) GoalRepo {
	return &goalRepo{db: db, log: log.With("repo", "GoalRepo")}
}

func (r *goalRepo) Create(dbc dbctx.Context, rows []*types.Goal) ([]*types.Goal, error) {
	if len(rows) == 0 {
		return []*types.Goal{}, nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *goalRepo) GetByIDForUser(dbc dbctx.Context, goalID, userID uuid.UUID) (*types.Goal, error) {
	if goalID == uuid.Nil || userID == uuid.Nil {
		return nil, fmt.Errorf("missing goal_id or user_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Goal
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", goalID, userID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *goalRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Goal, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Goal
	if err := txx.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *goalRepo) SetStatus(dbc dbctx.Context, goalID uuid.UUID, status types.GoalStatus) error {
	if goalID == uuid.Nil {
		return fmt.Errorf("missing goal_id")
	}
	if !status.Valid() {
		return fmt.Errorf("invalid goal status %q", status)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&types.Goal{}).
		Where("id = ?", goalID).
		Update("status", status).Error
}
