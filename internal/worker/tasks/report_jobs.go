package tasks

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// HandleWeeklyReports runs the fleet-wide engagement rollup. Per-coach
// failures are already absorbed inside RollAll; an error here means the
// coach listing itself failed, which is worth a scheduled retry.
func (h *TaskHandlers) HandleWeeklyReports(ctx context.Context, t *asynq.Task) error {
	if err := h.reports.RollAll(ctx); err != nil {
		h.logger.Error("weekly report rollup failed", zap.Error(err))
		return fmt.Errorf("weekly report rollup: %w", err)
	}
	return nil
}
