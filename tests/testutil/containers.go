package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/config"
	mongostore "github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/persistence/mongo"
)

// TestMongoContainer holds the MongoDB test container. The container runs as
// a single-node replica set: change streams and pre/post images need one.
type TestMongoContainer struct {
	Container  *mongodb.MongoDBContainer
	ConnString string
	Client     *mongo.Client
	DB         *mongo.Database
}

// SetupTestMongoContainer starts a MongoDB test container and connects to it
// through the same bootstrap path the binaries use.
func SetupTestMongoContainer(ctx context.Context, t *testing.T) (*TestMongoContainer, error) {
	t.Helper()

	container, err := mongodb.Run(ctx, "mongo:7.0", mongodb.WithReplicaSet("rs0"))
	if err != nil {
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	connString, err := container.ConnectionString(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	client, err := mongostore.Connect(ctx, config.MongoConfig{
		URL:            connString,
		Database:       "fitapp_test",
		ConnectTimeout: 30 * time.Second,
	})
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	return &TestMongoContainer{
		Container:  container,
		ConnString: connString,
		Client:     client,
		DB:         client.Database("fitapp_test"),
	}, nil
}

// Teardown cleans up the test container
func (tc *TestMongoContainer) Teardown(ctx context.Context, t *testing.T) {
	t.Helper()
	if tc.Client != nil {
		_ = tc.Client.Disconnect(ctx)
	}
	if tc.Container != nil {
		if err := testcontainers.TerminateContainer(tc.Container); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}
}
