package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
)

// CoachingRepository is the Mongo implementation of
// repository.CoachingRepository. Template records are filtered at the query
// so callers never see them.
type CoachingRepository struct {
	clients  *mongo.Collection
	sessions *mongo.Collection
	workouts *mongo.Collection
}

// NewCoachingRepository creates a new coaching repository
func NewCoachingRepository(db *mongo.Database) *CoachingRepository {
	return &CoachingRepository{
		clients:  db.Collection(CollClients),
		sessions: db.Collection(CollSessions),
		workouts: db.Collection(CollWorkouts),
	}
}

func (r *CoachingRepository) CoachIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.clients.Distinct(ctx, "coach_id", bson.M{"template": bson.M{"$ne": true}}).Decode(&ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list coach ids: %w", err)
	}
	return ids, nil
}

func (r *CoachingRepository) ListClients(ctx context.Context, coachID string) ([]*entity.CoachClient, error) {
	cursor, err := r.clients.Find(ctx, bson.M{
		"coach_id": coachID,
		"template": bson.M{"$ne": true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}

	var clients []*entity.CoachClient
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}
	return clients, nil
}

func (r *CoachingRepository) ListSessionsSince(ctx context.Context, coachID string, since time.Time) ([]*entity.TrainingSession, error) {
	cursor, err := r.sessions.Find(ctx, bson.M{
		"coach_id": coachID,
		"template": bson.M{"$ne": true},
		"date":     bson.M{"$gte": since},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}

	var sessions []*entity.TrainingSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}
	return sessions, nil
}

func (r *CoachingRepository) ListWorkoutsSince(ctx context.Context, coachID string, since time.Time) ([]*entity.Workout, error) {
	cursor, err := r.workouts.Find(ctx, bson.M{
		"coach_id": coachID,
		"template": bson.M{"$ne": true},
		"date":     bson.M{"$gte": since},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query workouts: %w", err)
	}

	var workouts []*entity.Workout
	if err := cursor.All(ctx, &workouts); err != nil {
		return nil, fmt.Errorf("failed to read workouts: %w", err)
	}
	return workouts, nil
}
