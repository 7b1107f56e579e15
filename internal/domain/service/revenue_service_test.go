package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/valueobject"
)

// now is fixed mid-March so the current/last month boundary is unambiguous.
var testNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func paidTx(coachID string, amount float64, txType valueobject.TransactionType, date *time.Time) *entity.Transaction {
	tx := entity.NewTransaction(coachID, amount, valueobject.StatusPaid, txType)
	tx.Date = date
	return tx
}

func dateIn(month time.Month, year, day int) *time.Time {
	d := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return &d
}

func TestComputeRevenueStats(t *testing.T) {
	t.Run("empty transaction set yields all zeroes", func(t *testing.T) {
		stats := ComputeRevenueStats("coach-1", nil, testNow)

		assert.Equal(t, "coach-1", stats.CoachID)
		assert.Zero(t, stats.TotalRevenue)
		assert.Zero(t, stats.MonthlyRecurring)
		assert.Zero(t, stats.ActiveSubscriptions)
		assert.Zero(t, stats.CurrentMonthRevenue)
		assert.Zero(t, stats.LastMonthRevenue)
		assert.Zero(t, stats.RevenueGrowth)
		assert.Zero(t, stats.RecurringGrowth)
		assert.Zero(t, stats.SubscriptionGrowth)
		assert.Equal(t, testNow, stats.LastUpdated)
	})

	t.Run("single paid one-time this month", func(t *testing.T) {
		txs := []*entity.Transaction{
			paidTx("coach-1", 100, valueobject.TypeOneTime, dateIn(time.March, 2026, 3)),
		}

		stats := ComputeRevenueStats("coach-1", txs, testNow)

		assert.Equal(t, 100.0, stats.TotalRevenue)
		assert.Equal(t, 0.0, stats.MonthlyRecurring)
		assert.Equal(t, 0, stats.ActiveSubscriptions)
		assert.Equal(t, 100.0, stats.CurrentMonthRevenue)
		assert.Equal(t, 0.0, stats.LastMonthRevenue)
		assert.Equal(t, 100.0, stats.RevenueGrowth)
	})

	t.Run("same subscriber both months dedupes and grows recurring", func(t *testing.T) {
		lastMonth := paidTx("coach-1", 50, valueobject.TypeSubscription, dateIn(time.February, 2026, 10))
		lastMonth.ClientName = "X"
		thisMonth := paidTx("coach-1", 75, valueobject.TypeSubscription, dateIn(time.March, 2026, 10))
		thisMonth.ClientName = "X"

		stats := ComputeRevenueStats("coach-1", []*entity.Transaction{lastMonth, thisMonth}, testNow)

		assert.Equal(t, 1, stats.ActiveSubscriptions)
		assert.Equal(t, 0.0, stats.SubscriptionGrowth)
		assert.Equal(t, 50.0, stats.RecurringGrowth)
		assert.Equal(t, 125.0, stats.MonthlyRecurring)
	})

	t.Run("pending transaction contributes nothing", func(t *testing.T) {
		tx := entity.NewTransaction("coach-1", 1000, valueobject.StatusPending, valueobject.TypeSubscription)
		tx.Date = dateIn(time.March, 2026, 1)
		tx.ClientID = "client-1"

		stats := ComputeRevenueStats("coach-1", []*entity.Transaction{tx}, testNow)

		assert.Zero(t, stats.TotalRevenue)
		assert.Zero(t, stats.MonthlyRecurring)
		assert.Zero(t, stats.ActiveSubscriptions)
		assert.Zero(t, stats.CurrentMonthRevenue)
	})

	t.Run("dateless paid transaction counts toward lifetime only", func(t *testing.T) {
		txs := []*entity.Transaction{
			paidTx("coach-1", 40, valueobject.TypeOneTime, nil),
		}

		stats := ComputeRevenueStats("coach-1", txs, testNow)

		assert.Equal(t, 40.0, stats.TotalRevenue)
		assert.Zero(t, stats.CurrentMonthRevenue)
		assert.Zero(t, stats.LastMonthRevenue)
		assert.Zero(t, stats.RevenueGrowth)
	})

	t.Run("client ID preferred over name for dedup", func(t *testing.T) {
		a := paidTx("coach-1", 10, valueobject.TypeSubscription, dateIn(time.March, 2026, 1))
		a.ClientID = "c1"
		a.ClientName = "Name A"
		b := paidTx("coach-1", 10, valueobject.TypeSubscription, dateIn(time.March, 2026, 2))
		b.ClientID = "c1"
		b.ClientName = "Name B"
		c := paidTx("coach-1", 10, valueobject.TypeSubscription, dateIn(time.March, 2026, 3))
		c.ClientName = "Name C"

		stats := ComputeRevenueStats("coach-1", []*entity.Transaction{a, b, c}, testNow)

		assert.Equal(t, 2, stats.ActiveSubscriptions)
	})

	t.Run("January boundary buckets December as last month", func(t *testing.T) {
		january := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
		txs := []*entity.Transaction{
			paidTx("coach-1", 200, valueobject.TypeOneTime, dateIn(time.December, 2025, 20)),
			paidTx("coach-1", 100, valueobject.TypeOneTime, dateIn(time.January, 2026, 2)),
		}

		stats := ComputeRevenueStats("coach-1", txs, january)

		assert.Equal(t, 100.0, stats.CurrentMonthRevenue)
		assert.Equal(t, 200.0, stats.LastMonthRevenue)
		assert.Equal(t, -50.0, stats.RevenueGrowth)
	})

	t.Run("recompute is idempotent apart from LastUpdated", func(t *testing.T) {
		txs := []*entity.Transaction{
			paidTx("coach-1", 100, valueobject.TypeSubscription, dateIn(time.March, 2026, 1)),
			paidTx("coach-1", 55, valueobject.TypeOneTime, dateIn(time.February, 2026, 1)),
		}
		txs[0].ClientID = "c1"

		first := ComputeRevenueStats("coach-1", txs, testNow)
		second := ComputeRevenueStats("coach-1", txs, testNow.Add(time.Hour))

		second.LastUpdated = first.LastUpdated
		assert.Equal(t, first, second)
	})
}

func TestGrowthPercent(t *testing.T) {
	assert.Equal(t, 100.0, growthPercent(50, 0))
	assert.Equal(t, 0.0, growthPercent(0, 0))
	assert.Equal(t, 50.0, growthPercent(75, 50))
	assert.Equal(t, -100.0, growthPercent(0, 80))
}

func TestRevenueServiceRecompute(t *testing.T) {
	ctx := context.Background()

	t.Run("fetch then upsert", func(t *testing.T) {
		txRepo := new(TransactionRepositoryMock)
		statsRepo := new(StatsRepositoryMock)
		svc := NewRevenueService(txRepo, statsRepo, zap.NewNop())

		txRepo.On("ListByCoach", mock.Anything, "coach-1").
			Return([]*entity.Transaction{paidTx("coach-1", 100, valueobject.TypeOneTime, nil)}, nil).Once()
		statsRepo.On("UpsertRevenue", mock.Anything, mock.MatchedBy(func(s *entity.RevenueStats) bool {
			return s.CoachID == "coach-1" && s.TotalRevenue == 100
		})).Return(nil).Once()

		stats, err := svc.Recompute(ctx, "coach-1")
		assert.NoError(t, err)
		assert.Equal(t, 100.0, stats.TotalRevenue)
		txRepo.AssertExpectations(t)
		statsRepo.AssertExpectations(t)
	})

	t.Run("deleting the last transaction zeroes the snapshot", func(t *testing.T) {
		txRepo := new(TransactionRepositoryMock)
		statsRepo := new(StatsRepositoryMock)
		svc := NewRevenueService(txRepo, statsRepo, zap.NewNop())

		txRepo.On("ListByCoach", mock.Anything, "coach-1").
			Return([]*entity.Transaction{}, nil).Once()
		statsRepo.On("UpsertRevenue", mock.Anything, mock.MatchedBy(func(s *entity.RevenueStats) bool {
			return s.TotalRevenue == 0 && s.ActiveSubscriptions == 0 && s.RevenueGrowth == 0
		})).Return(nil).Once()

		_, err := svc.Recompute(ctx, "coach-1")
		assert.NoError(t, err)
		statsRepo.AssertExpectations(t)
	})

	t.Run("fetch failure aborts without writing", func(t *testing.T) {
		txRepo := new(TransactionRepositoryMock)
		statsRepo := new(StatsRepositoryMock)
		svc := NewRevenueService(txRepo, statsRepo, zap.NewNop())

		txRepo.On("ListByCoach", mock.Anything, "coach-1").
			Return(nil, errors.New("store unavailable")).Once()

		_, err := svc.Recompute(ctx, "coach-1")
		assert.Error(t, err)
		statsRepo.AssertNotCalled(t, "UpsertRevenue", mock.Anything, mock.Anything)
	})
}
