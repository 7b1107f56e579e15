package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "github.com/Viktoooor3190/fitapp-sub001/internal/domain/errors"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/repository"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/service"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/logging"
	"github.com/Viktoooor3190/fitapp-sub001/internal/interfaces/http/response"
)

// PlanHandler serves AI plan generation for onboarded users
type PlanHandler struct {
	plans    *service.PlanService
	planRepo repository.PlanRepository
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(plans *service.PlanService, planRepo repository.PlanRepository) *PlanHandler {
	return &PlanHandler{
		plans:    plans,
		planRepo: planRepo,
	}
}

type planRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

func (r *planRequest) parse() (time.Time, error) {
	return time.Parse("2006-01-02", r.Date)
}

// GenerateWorkout produces a workout plan for the user
func (h *PlanHandler) GenerateWorkout(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	date, err := req.parse()
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	plan, err := h.plans.GenerateWorkoutPlan(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.planError(c, err)
		return
	}
	response.Created(c, plan)
}

// GenerateNutrition produces a nutrition plan for the user
func (h *PlanHandler) GenerateNutrition(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	date, err := req.parse()
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}

	plan, err := h.plans.GenerateNutritionPlan(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.planError(c, err)
		return
	}
	response.Created(c, plan)
}

// List returns the user's generated plans, newest first
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planRepo.ListByUser(c.Request.Context(), c.Param("id"), 20)
	if err != nil {
		logging.GetLogger(c).Error("failed to list plans", zap.Error(err))
		response.InternalError(c, "failed to list plans")
		return
	}
	response.OK(c, plans)
}

func (h *PlanHandler) planError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerrors.ErrIntakeIncomplete):
		response.UnprocessableEntity(c, "complete the intake questionnaire before requesting a plan")
	case errors.Is(err, domainerrors.ErrExternalServiceUnavailable),
		errors.Is(err, domainerrors.ErrEmptyCompletion),
		errors.Is(err, domainerrors.ErrMalformedPlan):
		logging.GetLogger(c).Warn("plan generation upstream failure", zap.Error(err))
		response.BadGateway(c, "plan generation failed, try again")
	default:
		logging.GetLogger(c).Error("plan generation failed", zap.Error(err))
		response.InternalError(c, "plan generation failed")
	}
}
