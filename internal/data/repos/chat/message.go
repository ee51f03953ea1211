package chat

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

type MessageRepo interface {
	Create(dbc dbctx.Context, rows []*types.ChatMessage) ([]*types.ChatMessage, error)
	ListByChunk(dbc dbctx.Context, chunkID uuid.UUID) ([]*types.ChatMessage, error)
	CountByChunk(dbc dbctx.Context, chunkID uuid.UUID) (int64, error)
}

type messageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMessageRepo(db *gorm.DB, log *logger.Logger) MessageRepo {
	return &messageRepo{db: db, log: log.With("repo", "ChatMessageRepo")}
}

func (r *messageRepo) Create(dbc dbctx.Context, rows []*types.ChatMessage) ([]*types.ChatMessage, error) {
	if len(rows) == 0 {
		return []*types.ChatMessage{}, nil
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

func (r *messageRepo) ListByChunk(dbc dbctx.Context, chunkID uuid.UUID) ([]*types.ChatMessage, error) {
	if chunkID == uuid.Nil {
		return nil, fmt.Errorf("missing chunk_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*types.ChatMessage
	if err := txx.WithContext(dbc.Ctx).
		Where("chunk_id = ?", chunkID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *messageRepo) CountByChunk(dbc dbctx.Context, chunkID uuid.UUID) (int64, error) {
	if chunkID == uuid.Nil {
		return 0, fmt.Errorf("missing chunk_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var n int64
	if err := txx.WithContext(dbc.Ctx).
		Model(&types.ChatMessage{}).
		Where("chunk_id = ?", chunkID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
