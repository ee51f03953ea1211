package chat

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prashantttzz/experimentlabs/internal/data/repos/testutil"
	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
)

func TestMessageRepo_ListByChunk_Chronological(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "chat@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, owner.ID)
	chunk := testutil.SeedChunk(t, ctx, tx, goal.ID, 1, types.ChunkCurrent)

	base := time.Now().Add(-time.Hour)
	for i, content := range []string{"first", "second", "third"} {
		m := &types.ChatMessage{
			ID:        uuid.New(),
			ChunkID:   chunk.ID,
			Sender:    types.SenderUser,
			Content:   content,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := tx.WithContext(ctx).Create(m).Error; err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	repo := NewMessageRepo(db, log)
	got, err := repo.ListByChunk(dbctx.WithTx(ctx, tx), chunk.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(got))
	}
	want := []string{"first", "second", "third"}
	for i, m := range got {
		if m.Content != want[i] {
			t.Fatalf("message %d: expected %q, got %q", i, want[i], m.Content)
		}
	}
}

func TestMessageRepo_CountByChunk(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "count@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, owner.ID)
	chunk := testutil.SeedChunk(t, ctx, tx, goal.ID, 1, types.ChunkCurrent)
	otherChunk := testutil.SeedChunk(t, ctx, tx, goal.ID, 2, types.ChunkLocked)

	testutil.SeedChatMessage(t, ctx, tx, chunk.ID, types.SenderUser, "hi")
	testutil.SeedChatMessage(t, ctx, tx, chunk.ID, types.SenderAI, "hello")
	testutil.SeedChatMessage(t, ctx, tx, otherChunk.ID, types.SenderUser, "elsewhere")

	repo := NewMessageRepo(db, log)
	n, err := repo.CountByChunk(dbctx.WithTx(ctx, tx), chunk.ID)
	if err != nil {
		t.Fatalf("count messages: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 messages, got %d", n)
	}
}
