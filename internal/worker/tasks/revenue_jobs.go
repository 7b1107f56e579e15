package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	domainerrors "github.com/Viktoooor3190/fitapp-sub001/internal/domain/errors"
)

// HandleRecomputeRevenue rebuilds one coach's revenue snapshot. Failures are
// logged and marked SkipRetry: the next transaction event triggers a fresh
// full recompute anyway, so replaying a stale one buys nothing.
func (h *TaskHandlers) HandleRecomputeRevenue(ctx context.Context, t *asynq.Task) error {
	var payload recomputePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid recompute payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.CoachID == "" {
		h.logger.Warn("skipping recompute task", zap.Error(domainerrors.ErrMissingCoachID))
		return nil
	}

	if _, err := h.revenue.Recompute(ctx, payload.CoachID); err != nil {
		h.logger.Error("revenue recompute failed",
			zap.String("coach_id", payload.CoachID),
			zap.Error(err),
		)
		return fmt.Errorf("recompute failed for coach %s: %v: %w", payload.CoachID, err, asynq.SkipRetry)
	}
	return nil
}
