package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
	domainerrors "github.com/Viktoooor3190/fitapp-sub001/internal/domain/errors"
)

// IntakeRepository is the Mongo implementation of repository.IntakeRepository.
type IntakeRepository struct {
	coll *mongo.Collection
}

// NewIntakeRepository creates a new intake repository
func NewIntakeRepository(db *mongo.Database) *IntakeRepository {
	return &IntakeRepository{coll: db.Collection(CollIntakeProfiles)}
}

func (r *IntakeRepository) GetByUserID(ctx context.Context, userID string) (*entity.IntakeProfile, error) {
	var profile entity.IntakeProfile
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &domainerrors.NotFoundError{Entity: "intake profile", ID: userID, Err: err}
		}
		return nil, fmt.Errorf("failed to fetch intake profile: %w", err)
	}
	return &profile, nil
}

func (r *IntakeRepository) Upsert(ctx context.Context, profile *entity.IntakeProfile) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": profile.UserID},
		bson.M{"$set": profile},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert intake profile: %w", err)
	}
	return nil
}
