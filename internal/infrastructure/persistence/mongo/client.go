package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/config"
)

// Collection names
const (
	CollTransactions   = "transactions"
	CollRevenueStats   = "revenue_stats"
	CollReportStats    = "report_stats"
	CollClients        = "clients"
	CollSessions       = "sessions"
	CollWorkouts       = "workouts"
	CollIntakeProfiles = "intake_profiles"
	CollPlans          = "plans"
)

// Connect creates the single process-scoped Mongo client. Everything that
// touches the store receives this client (or a database handle derived from
// it) through its constructor.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URL).
		SetConnectTimeout(cfg.ConnectTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

// EnsureCollections creates missing collections and the indexes the
// aggregation paths rely on, and enables pre/post images on the transaction
// collection so the change stream can see delete and update before-images.
func EnsureCollections(ctx context.Context, db *mongo.Database) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	all := []string{
		CollTransactions, CollRevenueStats, CollReportStats,
		CollClients, CollSessions, CollWorkouts,
		CollIntakeProfiles, CollPlans,
	}
	for _, name := range all {
		if have[name] {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	if err := db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: CollTransactions},
		{Key: "changeStreamPreAndPostImages", Value: bson.D{{Key: "enabled", Value: true}}},
	}).Err(); err != nil {
		return fmt.Errorf("failed to enable pre/post images on %s: %w", CollTransactions, err)
	}

	return ensureIndexes(ctx, db)
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	coachIdx := mongo.IndexModel{Keys: bson.D{{Key: "coach_id", Value: 1}}}
	coachDateIdx := mongo.IndexModel{Keys: bson.D{{Key: "coach_id", Value: 1}, {Key: "date", Value: -1}}}
	uniqueCoachIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "coach_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	byCollection := map[string][]mongo.IndexModel{
		CollTransactions: {coachIdx},
		CollRevenueStats: {uniqueCoachIdx},
		CollReportStats:  {uniqueCoachIdx},
		CollClients:      {coachIdx},
		CollSessions:     {coachDateIdx},
		CollWorkouts:     {coachDateIdx},
		CollPlans:        {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}}},
	}

	for name, models := range byCollection {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", name, err)
		}
	}
	return nil
}
