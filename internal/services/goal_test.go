package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	learningrepo "github.com/prashantttzz/experimentlabs/internal/data/repos/learning"
	"github.com/prashantttzz/experimentlabs/internal/data/repos/testutil"
	types "github.com/prashantttzz/experimentlabs/internal/domain"
	pkgerrors "github.com/prashantttzz/experimentlabs/internal/pkg/errors"
)

func threeSpecs() []ChunkSpec {
	return []ChunkSpec{
		{Title: "Module One", Description: "d1", Week: "Week 1", Duration: "1 week", Difficulty: "Beginner", Objectives: []string{"o"}, Skills: []string{"s"}},
		{Title: "Module Two", Description: "d2", Week: "Week 2", Duration: "1 week", Difficulty: "Intermediate", Objectives: []string{"o"}, Skills: []string{"s"}},
		{Title: "Module Three", Description: "d3", Week: "Week 3", Duration: "1 week", Difficulty: "Advanced", Objectives: []string{"o"}, Skills: []string{"s"}},
	}
}

func TestGoalService_CreateGoal_RequiresTitleAndDescription(t *testing.T) {
	svc := NewGoalService(testLogger(t), nil, nil, nil, &stubCurriculum{})

	for name, input := range map[string][2]string{
		"missing title":       {"", "learn things"},
		"missing description": {"Learn Go", ""},
		"whitespace only":     {"   ", "   "},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateGoal(context.Background(), uuid.New(), input[0], input[1], "6 weeks")
			if !errors.Is(err, pkgerrors.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestGoalService_CreateGoal_PersistsOrderedSequence(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, uuid.NewString()+"@example.com")
	goals := learningrepo.NewGoalRepo(tx, log)
	chunks := learningrepo.NewChunkRepo(tx, log)
	svc := NewGoalService(testLogger(t), tx, goals, chunks, &stubCurriculum{specs: threeSpecs()})

	goal, err := svc.CreateGoal(ctx, user.ID, "Learn Go", "Become productive", "6 weeks")
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if goal.Status != types.GoalInProgress {
		t.Fatalf("expected IN_PROGRESS, got %s", goal.Status)
	}
	if goal.Progress != 0 {
		t.Fatalf("new goal must start at 0%%, got %d", goal.Progress)
	}
	if len(goal.Chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(goal.Chunks))
	}
	for i, c := range goal.Chunks {
		if c.Order != i+1 {
			t.Fatalf("chunk %d has order %d", i, c.Order)
		}
		want := types.ChunkLocked
		if i == 0 {
			want = types.ChunkCurrent
		}
		if c.Status != want {
			t.Fatalf("chunk %d: expected %s, got %s", i, want, c.Status)
		}
	}

	stored, err := chunks.ListByGoal(txContext(ctx, tx), goal.ID)
	if err != nil {
		t.Fatalf("reload chunks: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("expected 3 stored chunks, got %d", len(stored))
	}
}

func TestGoalService_GetGoal_UnownedLooksAbsent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	owner := testutil.SeedUser(t, ctx, tx, uuid.NewString()+"@example.com")
	stranger := testutil.SeedUser(t, ctx, tx, uuid.NewString()+"@example.com")
	goal, _ := testutil.SeedGoalWithChunks(t, ctx, tx, owner.ID, 2)

	// Reads go through dbctx without an explicit transaction, so the repos
	// are built on the test transaction directly.
	svc := NewGoalService(testLogger(t), tx, learningrepo.NewGoalRepo(tx, log), learningrepo.NewChunkRepo(tx, log), &stubCurriculum{})

	_, err := svc.GetGoal(ctx, stranger.ID, goal.ID)
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unowned goal, got %v", err)
	}

	got, err := svc.GetGoal(ctx, owner.ID, goal.ID)
	if err != nil {
		t.Fatalf("get goal as owner: %v", err)
	}
	if got.ID != goal.ID || len(got.Chunks) != 2 {
		t.Fatalf("unexpected goal: %+v", got)
	}
}

func TestGoalService_ListGoals_ComputesProgress(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	user := testutil.SeedUser(t, ctx, tx, uuid.NewString()+"@example.com")
	goal := testutil.SeedGoal(t, ctx, tx, user.ID)
	testutil.SeedChunk(t, ctx, tx, goal.ID, 1, types.ChunkCompleted)
	testutil.SeedChunk(t, ctx, tx, goal.ID, 2, types.ChunkCurrent)
	testutil.SeedChunk(t, ctx, tx, goal.ID, 3, types.ChunkLocked)

	svc := NewGoalService(testLogger(t), tx, learningrepo.NewGoalRepo(tx, log), learningrepo.NewChunkRepo(tx, log), &stubCurriculum{})

	got, err := svc.ListGoals(ctx, user.ID)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(got))
	}
	if got[0].Progress != 33 {
		t.Fatalf("expected 33%% progress, got %d", got[0].Progress)
	}
}
