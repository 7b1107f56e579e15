package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/service"
)

type transactionRepoMock struct {
	mock.Mock
}

func (m *transactionRepoMock) Create(ctx context.Context, tx *entity.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *transactionRepoMock) Update(ctx context.Context, tx *entity.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *transactionRepoMock) Delete(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *transactionRepoMock) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *transactionRepoMock) ListByCoach(ctx context.Context, coachID string) ([]*entity.Transaction, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

type statsRepoMock struct {
	mock.Mock
}

func (m *statsRepoMock) UpsertRevenue(ctx context.Context, stats *entity.RevenueStats) error {
	return m.Called(ctx, stats).Error(0)
}

func (m *statsRepoMock) GetRevenue(ctx context.Context, coachID string) (*entity.RevenueStats, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RevenueStats), args.Error(1)
}

func (m *statsRepoMock) UpsertReport(ctx context.Context, report *entity.ReportStats) error {
	return m.Called(ctx, report).Error(0)
}

func (m *statsRepoMock) GetReport(ctx context.Context, coachID string) (*entity.ReportStats, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReportStats), args.Error(1)
}

func TestHandleRecomputeRevenue(t *testing.T) {
	ctx := context.Background()

	newHandlers := func(txRepo *transactionRepoMock, statsRepo *statsRepoMock) *TaskHandlers {
		revenue := service.NewRevenueService(txRepo, statsRepo, zap.NewNop())
		return NewTaskHandlers(revenue, nil, zap.NewNop())
	}

	t.Run("recomputes the coach from the payload", func(t *testing.T) {
		txRepo := new(transactionRepoMock)
		statsRepo := new(statsRepoMock)
		h := newHandlers(txRepo, statsRepo)

		txRepo.On("ListByCoach", mock.Anything, "coach-1").Return([]*entity.Transaction{}, nil).Once()
		statsRepo.On("UpsertRevenue", mock.Anything, mock.Anything).Return(nil).Once()

		task, err := NewRecomputeRevenueTask("coach-1")
		require.NoError(t, err)

		err = h.HandleRecomputeRevenue(ctx, task)
		assert.NoError(t, err)
		txRepo.AssertExpectations(t)
		statsRepo.AssertExpectations(t)
	})

	t.Run("empty coach id is a logged no-op", func(t *testing.T) {
		h := newHandlers(new(transactionRepoMock), new(statsRepoMock))

		task, err := NewRecomputeRevenueTask("")
		require.NoError(t, err)

		assert.NoError(t, h.HandleRecomputeRevenue(ctx, task))
	})

	t.Run("store failure is not retried", func(t *testing.T) {
		txRepo := new(transactionRepoMock)
		statsRepo := new(statsRepoMock)
		h := newHandlers(txRepo, statsRepo)

		txRepo.On("ListByCoach", mock.Anything, "coach-1").Return(nil, errors.New("store unavailable")).Once()

		task, err := NewRecomputeRevenueTask("coach-1")
		require.NoError(t, err)

		err = h.HandleRecomputeRevenue(ctx, task)
		assert.ErrorIs(t, err, asynq.SkipRetry)
		statsRepo.AssertNotCalled(t, "UpsertRevenue", mock.Anything, mock.Anything)
	})
}
