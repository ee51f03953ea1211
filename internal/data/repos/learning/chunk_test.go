package learning

import (
	"context"
	"testing"

	"github.com/prashantttzz/experimentlabs/internal/data/repos/testutil"
	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
)

func TestChunkRepo_ListByGoal_OrderAscending(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "chunks@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, owner.ID)
	// Insert out of order; the repo must return by position.
	testutil.SeedChunk(t, ctx, tx, goal.ID, 3, types.ChunkLocked)
	testutil.SeedChunk(t, ctx, tx, goal.ID, 1, types.ChunkCurrent)
	testutil.SeedChunk(t, ctx, tx, goal.ID, 2, types.ChunkLocked)

	repo := NewChunkRepo(db, log)
	got, err := repo.ListByGoal(dbctx.WithTx(ctx, tx), goal.ID)
	if err != nil {
		t.Fatalf("list chunks: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(got))
	}
	for i, c := range got {
		if c.Order != i+1 {
			t.Fatalf("chunk %d has order %d", i, c.Order)
		}
	}
}

func TestChunkRepo_GetByIDForUser_JoinsOwnership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "chunk-owner@example.com")
	other := testutil.SeedUser(t, ctx, tx, "chunk-other@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, owner.ID)
	chunk := testutil.SeedChunk(t, ctx, tx, goal.ID, 1, types.ChunkCurrent)

	repo := NewChunkRepo(db, log)
	dbc := dbctx.WithTx(ctx, tx)

	got, err := repo.GetByIDForUser(dbc, chunk.ID, owner.ID)
	if err != nil {
		t.Fatalf("get chunk: %v", err)
	}
	if got == nil || got.ID != chunk.ID {
		t.Fatalf("expected chunk %s, got %v", chunk.ID, got)
	}

	got, err = repo.GetByIDForUser(dbc, chunk.ID, other.ID)
	if err != nil {
		t.Fatalf("get chunk as other user: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unowned chunk, got %v", got)
	}
}

func TestChunkRepo_GetByGoalAndOrder(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "order@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, owner.ID)
	c2 := testutil.SeedChunk(t, ctx, tx, goal.ID, 2, types.ChunkLocked)
	testutil.SeedChunk(t, ctx, tx, goal.ID, 1, types.ChunkCurrent)

	repo := NewChunkRepo(db, log)
	dbc := dbctx.WithTx(ctx, tx)

	got, err := repo.GetByGoalAndOrder(dbc, goal.ID, 2)
	if err != nil {
		t.Fatalf("get by order: %v", err)
	}
	if got == nil || got.ID != c2.ID {
		t.Fatalf("expected chunk %s at order 2, got %v", c2.ID, got)
	}

	// Past the end of the sequence there is no row, not an error.
	got, err = repo.GetByGoalAndOrder(dbc, goal.ID, 3)
	if err != nil {
		t.Fatalf("get past end: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil past end of sequence, got %v", got)
	}
}

func TestChunkRepo_SetStatusIf_OnlyMatchingTransition(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "transition@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, owner.ID)
	chunk := testutil.SeedChunk(t, ctx, tx, goal.ID, 1, types.ChunkCurrent)

	repo := NewChunkRepo(db, log)
	dbc := dbctx.WithTx(ctx, tx)

	ok, err := repo.SetStatusIf(dbc, chunk.ID, types.ChunkLocked, types.ChunkCompleted)
	if err != nil {
		t.Fatalf("conditional update: %v", err)
	}
	if ok {
		t.Fatal("transition from wrong status must not apply")
	}

	ok, err = repo.SetStatusIf(dbc, chunk.ID, types.ChunkCurrent, types.ChunkCompleted)
	if err != nil {
		t.Fatalf("conditional update: %v", err)
	}
	if !ok {
		t.Fatal("transition from matching status must apply")
	}

	// A second identical transition finds no CURRENT row.
	ok, err = repo.SetStatusIf(dbc, chunk.ID, types.ChunkCurrent, types.ChunkCompleted)
	if err != nil {
		t.Fatalf("repeat conditional update: %v", err)
	}
	if ok {
		t.Fatal("repeated transition must not apply")
	}

	got, err := repo.GetByID(dbc, chunk.ID)
	if err != nil {
		t.Fatalf("reload chunk: %v", err)
	}
	if got.Status != types.ChunkCompleted {
		t.Fatalf("expected COMPLETED, got %s", got.Status)
	}
}
