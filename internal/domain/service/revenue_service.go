package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/repository"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/valueobject"
)

// RevenueService recomputes a coach's revenue statistics from the full
// transaction history. Every recompute is a fresh scan; nothing is derived
// incrementally from the previous snapshot, so concurrent recomputes for the
// same coach are safe — whichever write lands last is self-consistent.
type RevenueService struct {
	transactions repository.TransactionRepository
	stats        repository.StatsRepository
	logger       *zap.Logger
}

// NewRevenueService creates a new revenue service
func NewRevenueService(transactions repository.TransactionRepository, stats repository.StatsRepository, logger *zap.Logger) *RevenueService {
	return &RevenueService{
		transactions: transactions,
		stats:        stats,
		logger:       logger,
	}
}

// Recompute rescans the coach's transactions and upserts a fresh snapshot.
// A fetch failure aborts before any write so a stale-but-consistent snapshot
// is never overwritten with a partial one.
func (s *RevenueService) Recompute(ctx context.Context, coachID string) (*entity.RevenueStats, error) {
	txs, err := s.transactions.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for coach %s: %w", coachID, err)
	}

	stats := ComputeRevenueStats(coachID, txs, time.Now().UTC())

	if err := s.stats.UpsertRevenue(ctx, stats); err != nil {
		return nil, fmt.Errorf("failed to write stats for coach %s: %w", coachID, err)
	}

	s.logger.Info("revenue stats recomputed",
		zap.String("coach_id", coachID),
		zap.Int("transactions", len(txs)),
		zap.Float64("total_revenue", stats.TotalRevenue),
	)
	return stats, nil
}

// ComputeRevenueStats scans a coach's transactions and produces a complete
// snapshot. Pure function: month buckets are resolved against now, not
// against any transaction. An empty transaction set yields all zeroes.
func ComputeRevenueStats(coachID string, txs []*entity.Transaction, now time.Time) *entity.RevenueStats {
	currentMonth := valueobject.MonthOf(now)
	lastMonth := currentMonth.Previous()

	var (
		totalRevenue  float64
		recurring     float64
		currentRev    float64
		lastRev       float64
		currentRec    float64
		lastRec       float64
		subscribers   = make(map[string]struct{})
		currentSubs   = make(map[string]struct{})
		lastMonthSubs = make(map[string]struct{})
	)

	for _, tx := range txs {
		if !tx.IsPaid() {
			continue
		}

		totalRevenue += tx.Amount

		// A transaction without a date still counts toward lifetime totals
		// but belongs to no month bucket.
		inCurrent, inLast := false, false
		if tx.Date != nil {
			inCurrent = currentMonth.Contains(*tx.Date)
			inLast = lastMonth.Contains(*tx.Date)
		}
		if inCurrent {
			currentRev += tx.Amount
		} else if inLast {
			lastRev += tx.Amount
		}

		if !tx.IsSubscription() {
			continue
		}

		recurring += tx.Amount
		if inCurrent {
			currentRec += tx.Amount
		} else if inLast {
			lastRec += tx.Amount
		}

		if key := tx.SubscriberKey(); key != "" {
			subscribers[key] = struct{}{}
			if inCurrent {
				currentSubs[key] = struct{}{}
			} else if inLast {
				lastMonthSubs[key] = struct{}{}
			}
		}
	}

	return &entity.RevenueStats{
		CoachID:             coachID,
		TotalRevenue:        totalRevenue,
		MonthlyRecurring:    recurring,
		ActiveSubscriptions: len(subscribers),
		CurrentMonthRevenue: currentRev,
		LastMonthRevenue:    lastRev,
		RevenueGrowth:       growthPercent(currentRev, lastRev),
		RecurringGrowth:     growthPercent(currentRec, lastRec),
		SubscriptionGrowth:  growthPercent(float64(len(currentSubs)), float64(len(lastMonthSubs))),
		LastUpdated:         now,
	}
}

// growthPercent is the month-over-month change: ((current-last)/last)*100
// when last is positive, 100 when something appeared from nothing, 0 when
// both periods are empty.
func growthPercent(current, last float64) float64 {
	if last > 0 {
		return (current - last) / last * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}
