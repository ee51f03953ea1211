package learning

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

type ChunkRepo interface {
	Create(dbc dbctx.Context, rows []*types.Chunk) ([]*types.Chunk, error)
	GetByID(dbc dbctx.Context, chunkID uuid.UUID) (*types.Chunk, error)
	// GetByIDForUser joins through goal so ownership is part of the lookup
	// predicate.
	GetByIDForUser(dbc dbctx.Context, chunkID, userID uuid.UUID) (*types.Chunk, error)
	ListByGoal(dbc dbctx.Context, goalID uuid.UUID) ([]*types.Chunk, error)
	GetByGoalAndOrder(dbc dbctx.Context, goalID uuid.UUID, order int) (*types.Chunk, error)
	// SetStatusIf performs a conditional status update and reports whether
	// the row was actually transitioned. Racing callers serialize here:
	// only one sees true.
	SetStatusIf(dbc dbctx.Context, chunkID uuid.UUID, from, to types.ChunkStatus) (bool, error)
	SetStatus(dbc dbctx.Context, chunkID uuid.UUID, status types.ChunkStatus) error
}

type chunkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChunkRepo(db *gorm.DB, log *logger.Logger) ChunkRepo {
	return &chunkRepo{db: db, log: log.With("repo", "ChunkRepo")}
}

func (r *chunkRepo) Create(dbc dbctx.Context, rows []*types.Chunk) ([]*types.Chunk, error) {
	if len(rows) == 0 {
		return []*types.Chunk{}, nil
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

func (r *chunkRepo) GetByID(dbc dbctx.Context, chunkID uuid.UUID) (*types.Chunk, error) {
	if chunkID == uuid.Nil {
		return nil, fmt.Errorf("missing chunk_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Chunk
	if err := txx.WithContext(dbc.Ctx).
		Where("id = ?", chunkID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *chunkRepo) GetByIDForUser(dbc dbctx.Context, chunkID, userID uuid.UUID) (*types.Chunk, error) {
	if chunkID == uuid.Nil || userID == uuid.Nil {
		return nil, fmt.Errorf("missing chunk_id or user_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Chunk
	if err := txx.WithContext(dbc.Ctx).
		Joins("JOIN goal ON goal.id = chunk.goal_id AND goal.deleted_at IS NULL").
		Where("chunk.id = ? AND goal.user_id = ?", chunkID, userID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *chunkRepo) ListByGoal(dbc dbctx.Context, goalID uuid.UUID) ([]*types.Chunk, error) {
	if goalID == uuid.Nil {
		return nil, fmt.Errorf("missing goal_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Chunk
	if err := txx.WithContext(dbc.Ctx).
		Where("goal_id = ?", goalID).
		Order("sequence_order ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *chunkRepo) GetByGoalAndOrder(dbc dbctx.Context, goalID uuid.UUID, order int) (*types.Chunk, error) {
	if goalID == uuid.Nil {
		return nil, fmt.Errorf("missing goal_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.Chunk
	if err := txx.WithContext(dbc.Ctx).
		Where("goal_id = ? AND sequence_order = ?", goalID, order).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *chunkRepo) SetStatusIf(dbc dbctx.Context, chunkID uuid.UUID, from, to types.ChunkStatus) (bool, error) {
	if chunkID == uuid.Nil {
		return false, fmt.Errorf("missing chunk_id")
	}
	if !from.Valid() || !to.Valid() {
		return false, fmt.Errorf("invalid chunk status transition %q -> %q", from, to)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	res := txx.WithContext(dbc.Ctx).
		Model(&types.Chunk{}).
		Where("id = ? AND status = ?", chunkID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *chunkRepo) SetStatus(dbc dbctx.Context, chunkID uuid.UUID, status types.ChunkStatus) error {
	if chunkID == uuid.Nil {
		return fmt.Errorf("missing chunk_id")
	}
	if !status.Valid() {
		return fmt.Errorf("invalid chunk status %q", status)
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).
		Model(&types.Chunk{}).
		Where("id = ?", chunkID).
		Update("status", status).Error
}
