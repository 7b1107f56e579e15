package repository

import (
	"context"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
)

// PlanRepository defines storage for generated plans
type PlanRepository interface {
	// Save persists a generated plan
	Save(ctx context.Context, plan *entity.GeneratedPlan) error

	// ListByUser retrieves a user's generated plans, newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.GeneratedPlan, error)
}
