package repository

import (
	"context"
	"time"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
)

// CoachingRepository defines read access to the coaching data the weekly
// report rollup scans. All methods exclude template records.
type CoachingRepository interface {
	// CoachIDs lists every coach that owns at least one client record
	CoachIDs(ctx context.Context) ([]string, error)

	// ListClients retrieves all non-template clients of a coach
	ListClients(ctx context.Context, coachID string) ([]*entity.CoachClient, error)

	// ListSessionsSince retrieves a coach's non-template sessions dated at or after since
	ListSessionsSince(ctx context.Context, coachID string, since time.Time) ([]*entity.TrainingSession, error)

	// ListWorkoutsSince retrieves a coach's non-template workouts dated at or after since
	ListWorkoutsSince(ctx context.Context, coachID string, since time.Time) ([]*entity.Workout, error)
}
