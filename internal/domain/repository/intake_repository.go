package repository

import (
	"context"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
)

// IntakeRepository defines access to onboarding questionnaire profiles
type IntakeRepository interface {
	// GetByUserID retrieves a user's intake profile
	GetByUserID(ctx context.Context, userID string) (*entity.IntakeProfile, error)

	// Upsert writes a user's intake profile
	Upsert(ctx context.Context, profile *entity.IntakeProfile) error
}
