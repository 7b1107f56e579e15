package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	domainerrors "github.com/Viktoooor3190/fitapp-sub001/internal/domain/errors"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/repository"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/logging"
	"github.com/Viktoooor3190/fitapp-sub001/internal/interfaces/http/response"
	"github.com/Viktoooor3190/fitapp-sub001/internal/worker/tasks"
)

// Enqueuer is the slice of asynq.Client the handlers need.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// StatsHandler serves the per-coach dashboard numbers
type StatsHandler struct {
	stats repository.StatsRepository
	queue Enqueuer
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats repository.StatsRepository, queue Enqueuer) *StatsHandler {
	return &StatsHandler{
		stats: stats,
		queue: queue,
	}
}

// GetRevenueStats returns a coach's revenue snapshot
func (h *StatsHandler) GetRevenueStats(c *gin.Context) {
	coachID := c.Param("id")

	stats, err := h.stats.GetRevenue(c.Request.Context(), coachID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrStatsNotFound) {
			response.NotFound(c, "no statistics recorded for this coach yet")
			return
		}
		logging.GetLogger(c).Error("failed to fetch revenue stats", zap.Error(err))
		response.InternalError(c, "failed to fetch statistics")
		return
	}

	response.OK(c, stats)
}

// GetReport returns a coach's weekly engagement report
func (h *StatsHandler) GetReport(c *gin.Context) {
	coachID := c.Param("id")

	report, err := h.stats.GetReport(c.Request.Context(), coachID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrReportNotFound) {
			response.NotFound(c, "no report recorded for this coach yet")
			return
		}
		logging.GetLogger(c).Error("failed to fetch report", zap.Error(err))
		response.InternalError(c, "failed to fetch report")
		return
	}

	response.OK(c, report)
}

// RecomputeStats queues a fresh revenue recompute for a coach. Same task the
// change-stream dispatcher uses, so the arithmetic cannot drift between the
// two paths.
func (h *StatsHandler) RecomputeStats(c *gin.Context) {
	coachID := c.Param("id")

	task, err := tasks.NewRecomputeRevenueTask(coachID)
	if err != nil {
		logging.GetLogger(c).Error("failed to build recompute task", zap.Error(err))
		response.InternalError(c, "failed to queue recompute")
		return
	}
	if _, err := h.queue.Enqueue(task); err != nil {
		logging.GetLogger(c).Error("failed to enqueue recompute", zap.Error(err))
		response.InternalError(c, "failed to queue recompute")
		return
	}

	response.Accepted(c, gin.H{"coach_id": coachID, "status": "queued"})
}
