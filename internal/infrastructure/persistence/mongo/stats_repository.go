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

// StatsRepository is the Mongo implementation of repository.StatsRepository.
// Both upserts use $set so fields written by other components survive a
// recompute.
type StatsRepository struct {
	revenue *mongo.Collection
	reports *mongo.Collection
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{
		revenue: db.Collection(CollRevenueStats),
		reports: db.Collection(CollReportStats),
	}
}

func (r *StatsRepository) UpsertRevenue(ctx context.Context, stats *entity.RevenueStats) error {
	_, err := r.revenue.UpdateOne(ctx,
		bson.M{"coach_id": stats.CoachID},
		bson.M{"$set": stats},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert revenue stats: %w", err)
	}
	return nil
}

func (r *StatsRepository) GetRevenue(ctx context.Context, coachID string) (*entity.RevenueStats, error) {
	var stats entity.RevenueStats
	err := r.revenue.FindOne(ctx, bson.M{"coach_id": coachID}).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to fetch revenue stats: %w", err)
	}
	return &stats, nil
}

func (r *StatsRepository) UpsertReport(ctx context.Context, report *entity.ReportStats) error {
	_, err := r.reports.UpdateOne(ctx,
		bson.M{"coach_id": report.CoachID},
		bson.M{"$set": report},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert report stats: %w", err)
	}
	return nil
}

func (r *StatsRepository) GetReport(ctx context.Context, coachID string) (*entity.ReportStats, error) {
	var report entity.ReportStats
	err := r.reports.FindOne(ctx, bson.M{"coach_id": coachID}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainerrors.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to fetch report stats: %w", err)
	}
	return &report, nil
}
