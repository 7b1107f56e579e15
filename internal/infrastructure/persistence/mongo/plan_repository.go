package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
)

// PlanRepository is the Mongo implementation of repository.PlanRepository.
type PlanRepository struct {
	coll *mongo.Collection
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *mongo.Database) *PlanRepository {
	return &PlanRepository{coll: db.Collection(CollPlans)}
}

func (r *PlanRepository) Save(ctx context.Context, plan *entity.GeneratedPlan) error {
	if _, err := r.coll.InsertOne(ctx, plan); err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}
	return nil
}

func (r *PlanRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.GeneratedPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}

	var plans []*entity.GeneratedPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return nil, fmt.Errorf("failed to read plans: %w", err)
	}
	return plans, nil
}
