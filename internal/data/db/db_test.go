package db

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/platform/logger"
)

// The schema must migrate on sqlite as well as Postgres: IDs and
// timestamps are assigned by the application, never by DB defaults, so
// the generated DDL contains no Postgres-only function calls.
func TestNew_SQLiteMigratesAndRoundTrips(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "test.db"))

	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	svc, err := New(log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("automigrate on sqlite: %v", err)
	}

	u := &types.User{ID: uuid.New(), Email: "local@example.com", Password: "hash", Name: "Local"}
	if err := svc.DB().Create(u).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}

	goal := &types.Goal{
		ID:          uuid.New(),
		UserID:      u.ID,
		Title:       "Learn something",
		Description: "A goal",
		Status:      types.GoalInProgress,
	}
	if err := svc.DB().Create(goal).Error; err != nil {
		t.Fatalf("insert goal: %v", err)
	}
	chunk := &types.Chunk{
		ID:         uuid.New(),
		GoalID:     goal.ID,
		Order:      1,
		Title:      "First chunk",
		Status:     types.ChunkCurrent,
		Objectives: datatypes.JSON([]byte(`["a"]`)),
		Skills:     datatypes.JSON([]byte(`[]`)),
	}
	if err := svc.DB().Create(chunk).Error; err != nil {
		t.Fatalf("insert chunk: %v", err)
	}

	var got types.User
	if err := svc.DB().First(&got, "id = ?", u.ID).Error; err != nil {
		t.Fatalf("read user back: %v", err)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be populated on create")
	}
}
