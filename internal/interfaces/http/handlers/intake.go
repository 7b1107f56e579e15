package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
	domainerrors "github.com/Viktoooor3190/fitapp-sub001/internal/domain/errors"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/repository"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/logging"
	"github.com/Viktoooor3190/fitapp-sub001/internal/interfaces/http/response"
)

// IntakeHandler manages onboarding questionnaire profiles. Completing the
// profile is what unlocks plan generation for a user.
type IntakeHandler struct {
	intake repository.IntakeRepository
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(intake repository.IntakeRepository) *IntakeHandler {
	return &IntakeHandler{intake: intake}
}

type intakeRequest struct {
	Age          int      `json:"age" binding:"required,gte=13"`
	WeightKg     float64  `json:"weightKg" binding:"required,gt=0"`
	HeightCm     float64  `json:"heightCm" binding:"required,gt=0"`
	Gender       string   `json:"gender"`
	Goals        []string `json:"goals" binding:"required,min=1"`
	Restrictions []string `json:"restrictions"`
	Experience   string   `json:"experience"`
	DaysPerWeek  int      `json:"daysPerWeek" binding:"omitempty,gte=1,lte=7"`
}

// Upsert writes a user's full questionnaire and marks it completed
func (h *IntakeHandler) Upsert(c *gin.Context) {
	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	profile := &entity.IntakeProfile{
		UserID:       c.Param("id"),
		Age:          req.Age,
		WeightKg:     req.WeightKg,
		HeightCm:     req.HeightCm,
		Gender:       req.Gender,
		Goals:        req.Goals,
		Restrictions: req.Restrictions,
		Experience:   req.Experience,
		DaysPerWeek:  req.DaysPerWeek,
		Completed:    true,
		UpdatedAt:    time.Now().UTC(),
	}

	if err := h.intake.Upsert(c.Request.Context(), profile); err != nil {
		logging.GetLogger(c).Error("failed to upsert intake profile", zap.Error(err))
		response.InternalError(c, "failed to save intake profile")
		return
	}

	response.OK(c, profile)
}

// Get returns a user's intake profile
func (h *IntakeHandler) Get(c *gin.Context) {
	profile, err := h.intake.GetByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		var notFound *domainerrors.NotFoundError
		if errors.As(err, &notFound) {
			response.NotFound(c, "intake profile not found")
			return
		}
		logging.GetLogger(c).Error("failed to fetch intake profile", zap.Error(err))
		response.InternalError(c, "failed to fetch intake profile")
		return
	}

	response.OK(c, profile)
}
