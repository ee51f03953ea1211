package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prashantttzz/experimentlabs/internal/http/response"
	"github.com/prashantttzz/experimentlabs/internal/pkg/ctxutil"
	pkgerrors "github.com/prashantttzz/experimentlabs/internal/pkg/errors"
	"github.com/prashantttzz/experimentlabs/internal/services"
)

type GoalHandler struct {
	goalService        services.GoalService
	progressionService services.ProgressionService
}

func NewGoalHandler(goalService services.GoalService, progressionService services.ProgressionService) *GoalHandler {
	return &GoalHandler{
		goalService:        goalService,
		progressionService: progressionService,
	}
}

func (gh *GoalHandler) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Timeline    string `json:"timeline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	userID := currentUserID(c)
	goal, err := gh.goalService.CreateGoal(c.Request.Context(), userID, req.Title, req.Description, req.Timeline)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"goal": goal})
}

func (gh *GoalHandler) List(c *gin.Context) {
	goals, err := gh.goalService.ListGoals(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"goals": goals})
}

func (gh *GoalHandler) Get(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		response.RespondDomainError(c, pkgerrors.ErrNotFound)
		return
	}
	goal, err := gh.goalService.GetGoal(c.Request.Context(), currentUserID(c), goalID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"goal": goal})
}

// Assess triggers an assessment for the chunk. A failed verdict is a 400
// carrying the evaluator's feedback; a lost commit race is a 409.
func (gh *GoalHandler) Assess(c *gin.Context) {
	goalID, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		response.RespondDomainError(c, pkgerrors.ErrNotFound)
		return
	}
	chunkID, err := uuid.Parse(c.Param("chunkId"))
	if err != nil {
		response.RespondDomainError(c, pkgerrors.ErrNotFound)
		return
	}
	result, err := gh.progressionService.RequestAssessment(c.Request.Context(), currentUserID(c), goalID, chunkID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	if !result.Passed {
		c.JSON(http.StatusBadRequest, gin.H{
			"passed":   false,
			"feedback": result.Feedback,
		})
		return
	}
	response.RespondOK(c, result)
}

func currentUserID(c *gin.Context) uuid.UUID {
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		return rd.UserID
	}
	return uuid.Nil
}
