package repository

import (
	"context"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
)

// StatsRepository defines the interface for the per-coach revenue statistics
// and weekly report documents. Writes are merge-upserts: only the computed
// fields are set, anything added to the document elsewhere survives.
type StatsRepository interface {
	// UpsertRevenue writes a coach's revenue snapshot
	UpsertRevenue(ctx context.Context, stats *entity.RevenueStats) error

	// GetRevenue retrieves a coach's revenue snapshot
	GetRevenue(ctx context.Context, coachID string) (*entity.RevenueStats, error)

	// UpsertReport writes a coach's weekly engagement report
	UpsertReport(ctx context.Context, report *entity.ReportStats) error

	// GetReport retrieves a coach's weekly engagement report
	GetReport(ctx context.Context, coachID string) (*entity.ReportStats, error)
}
