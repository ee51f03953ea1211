package learning

import (
	"context"
	"testing"

	"github.com/prashantttzz/experimentlabs/internal/data/repos/testutil"
	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/dbctx"
)

func TestGoalRepo_GetByIDForUser_ScopedToOwner(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "owner@example.com")
	other := testutil.SeedUser(t, ctx, tx, "other@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, owner.ID)

	repo := NewGoalRepo(db, log)
	dbc := dbctx.WithTx(ctx, tx)

	got, err := repo.GetByIDForUser(dbc, goal.ID, owner.ID)
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if got == nil || got.ID != goal.ID {
		t.Fatalf("expected goal %s, got %v", goal.ID, got)
	}

	// The same id under a different user must look absent.
	got, err = repo.GetByIDForUser(dbc, goal.ID, other.ID)
	if err != nil {
		t.Fatalf("get goal as other user: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unowned goal, got %v", got)
	}
}

func TestGoalRepo_ListByUser_OnlyOwnGoals(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "list-owner@example.com")
	other := testutil.SeedUser(t, ctx, tx, "list-other@example.com")
	g1 := testutil.SeedGoal(t, ctx, tx, owner.ID)
	g2 := testutil.SeedGoal(t, ctx, tx, owner.ID)
	testutil.SeedGoal(t, ctx, tx, other.ID)

	repo := NewGoalRepo(db, log)
	got, err := repo.ListByUser(dbctx.WithTx(ctx, tx), owner.ID)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(got))
	}
	ids := map[string]bool{got[0].ID.String(): true, got[1].ID.String(): true}
	if !ids[g1.ID.String()] || !ids[g2.ID.String()] {
		t.Fatalf("listed wrong goals: %v", ids)
	}
}

func TestGoalRepo_SetStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, "status-owner@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, owner.ID)

	repo := NewGoalRepo(db, log)
	dbc := dbctx.WithTx(ctx, tx)

	if err := repo.SetStatus(dbc, goal.ID, types.GoalCompleted); err != nil {
		t.Fatalf("set status: %v", err)
	}
	got, err := repo.GetByIDForUser(dbc, goal.ID, owner.ID)
	if err != nil {
		t.Fatalf("reload goal: %v", err)
	}
	if got.Status != types.GoalCompleted {
		t.Fatalf("expected status %s, got %s", types.GoalCompleted, got.Status)
	}

	if err := repo.SetStatus(dbc, goal.ID, "BOGUS"); err == nil {
		t.Fatal("expected error for invalid status")
	}
}
