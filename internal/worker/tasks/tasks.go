package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/service"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/logging"
)

// Task names
const (
	TypeRecomputeRevenue = "recompute:revenue"
	TypeWeeklyReports    = "report:weekly"
)

// recomputePayload carries the coach whose snapshot needs rebuilding.
type recomputePayload struct {
	CoachID string `json:"coach_id"`
}

// NewRecomputeRevenueTask builds the recompute task for one coach. Both the
// change-stream dispatcher and the manual recompute endpoint go through this
// so every trigger shares one implementation.
func NewRecomputeRevenueTask(coachID string) (*asynq.Task, error) {
	payload, err := json.Marshal(recomputePayload{CoachID: coachID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode recompute payload: %w", err)
	}
	return asynq.NewTask(TypeRecomputeRevenue, payload), nil
}

// TaskHandlers holds dependencies for all task handlers.
type TaskHandlers struct {
	revenue *service.RevenueService
	reports *service.ReportService
	logger  *zap.Logger
}

// NewTaskHandlers creates task handlers over the domain services.
func NewTaskHandlers(revenue *service.RevenueService, reports *service.ReportService, logger *zap.Logger) *TaskHandlers {
	return &TaskHandlers{
		revenue: revenue,
		reports: reports,
		logger:  logger,
	}
}

// RegisterHandlers registers all task handlers with the server mux.
func RegisterHandlers(mux *asynq.ServeMux, h *TaskHandlers) {
	mux.HandleFunc(TypeRecomputeRevenue, h.HandleRecomputeRevenue)
	mux.HandleFunc(TypeWeeklyReports, h.HandleWeeklyReports)
}

// RegisterScheduledTasks registers all scheduled (cron) tasks
func RegisterScheduledTasks(scheduler *asynq.Scheduler) {
	// Roll up engagement reports Monday 03:00 UTC
	_, err := scheduler.Register("0 3 * * 1", asynq.NewTask(TypeWeeklyReports, nil))
	if err != nil {
		logging.Logger.Error("failed to schedule weekly report rollup", zap.Error(err))
	}
}
