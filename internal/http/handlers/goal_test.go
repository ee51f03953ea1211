package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/prashantttzz/experimentlabs/internal/domain"
	"github.com/prashantttzz/experimentlabs/internal/pkg/ctxutil"
)

type stubGoalService struct {
	goal *types.Goal
}

func (s *stubGoalService) CreateGoal(ctx context.Context, userID uuid.UUID, title, description, timeline string) (*types.Goal, error) {
	return s.goal, nil
}

func (s *stubGoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]*types.Goal, error) {
	return []*types.Goal{s.goal}, nil
}

func (s *stubGoalService) GetGoal(ctx context.Context, userID, goalID uuid.UUID) (*types.Goal, error) {
	return s.goal, nil
}

func TestGoalHandler_Create_RespondsCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	goal := &types.Goal{ID: uuid.New(), Title: "Learn Go", Status: types.GoalInProgress}
	h := NewGoalHandler(&stubGoalService{goal: goal}, nil)

	router := gin.New()
	router.POST("/api/goal/new", func(c *gin.Context) {
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: uuid.New()})
		c.Request = c.Request.WithContext(ctx)
		h.Create(c)
	})

	body, err := json.Marshal(gin.H{"title": "Learn Go", "description": "From zero", "timeline": "6 weeks"})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/goal/new", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Goal types.Goal `json:"goal"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Goal.ID != goal.ID {
		t.Fatalf("expected goal %s in body, got %+v", goal.ID, got.Goal)
	}
}
