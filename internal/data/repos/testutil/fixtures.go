package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/prashantttzz/experimentlabs/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "Test User",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedGoal(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID) *types.Goal {
	tb.Helper()
	g := &types.Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       "Learn Go",
		Description: "Become productive in Go",
		Timeline:    "6 weeks",
		Status:      types.GoalInProgress,
	}
	if err := tx.WithContext(ctx).Create(g).Error; err != nil {
		tb.Fatalf("seed goal: %v", err)
	}
	return g
}

func SeedChunk(tb testing.TB, ctx context.Context, tx *gorm.DB, goalID uuid.UUID, order int, status types.ChunkStatus) *types.Chunk {
	tb.Helper()
	c := &types.Chunk{
		ID:          uuid.New(),
		GoalID:      goalID,
		Order:       order,
		Title:       fmt.Sprintf("Module %d", order),
		Description: "module description",
		Week:        fmt.Sprintf("Week %d", order),
		Duration:    "1 week",
		Difficulty:  "Beginner",
		Status:      status,
		Objectives:  datatypes.JSON([]byte(`["objective"]`)),
		Skills:      datatypes.JSON([]byte(`["skill"]`)),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed chunk: %v", err)
	}
	return c
}

// SeedGoalWithChunks creates a goal with n chunks, the first CURRENT and
// the rest LOCKED.
func SeedGoalWithChunks(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, n int) (*types.Goal, []*types.Chunk) {
	tb.Helper()
	g := SeedGoal(tb, ctx, tx, userID)
	chunks := make([]*types.Chunk, 0, n)
	for i := 1; i <= n; i++ {
		status := types.ChunkLocked
		if i == 1 {
			status = types.ChunkCurrent
		}
		chunks = append(chunks, SeedChunk(tb, ctx, tx, g.ID, i, status))
	}
	return g, chunks
}

func SeedChatMessage(tb testing.TB, ctx context.Context, tx *gorm.DB, chunkID uuid.UUID, sender types.SenderRole, content string) *types.ChatMessage {
	tb.Helper()
	m := &types.ChatMessage{
		ID:      uuid.New(),
		ChunkID: chunkID,
		Sender:  sender,
		Content: content,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed chat message: %v", err)
	}
	return m
}
