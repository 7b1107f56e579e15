package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
)

type TransactionRepositoryMock struct {
	mock.Mock
}

func (m *TransactionRepositoryMock) Create(ctx context.Context, tx *entity.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepositoryMock) Update(ctx context.Context, tx *entity.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepositoryMock) Delete(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *TransactionRepositoryMock) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *TransactionRepositoryMock) ListByCoach(ctx context.Context, coachID string) ([]*entity.Transaction, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

type StatsRepositoryMock struct {
	mock.Mock
}

func (m *StatsRepositoryMock) UpsertRevenue(ctx context.Context, stats *entity.RevenueStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

func (m *StatsRepositoryMock) GetRevenue(ctx context.Context, coachID string) (*entity.RevenueStats, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RevenueStats), args.Error(1)
}

func (m *StatsRepositoryMock) UpsertReport(ctx context.Context, report *entity.ReportStats) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *StatsRepositoryMock) GetReport(ctx context.Context, coachID string) (*entity.ReportStats, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReportStats), args.Error(1)
}

type CoachingRepositoryMock struct {
	mock.Mock
}

func (m *CoachingRepositoryMock) CoachIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *CoachingRepositoryMock) ListClients(ctx context.Context, coachID string) ([]*entity.CoachClient, error) {
	args := m.Called(ctx, coachID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.CoachClient), args.Error(1)
}

func (m *CoachingRepositoryMock) ListSessionsSince(ctx context.Context, coachID string, since time.Time) ([]*entity.TrainingSession, error) {
	args := m.Called(ctx, coachID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TrainingSession), args.Error(1)
}

func (m *CoachingRepositoryMock) ListWorkoutsSince(ctx context.Context, coachID string, since time.Time) ([]*entity.Workout, error) {
	args := m.Called(ctx, coachID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Workout), args.Error(1)
}

type IntakeRepositoryMock struct {
	mock.Mock
}

func (m *IntakeRepositoryMock) GetByUserID(ctx context.Context, userID string) (*entity.IntakeProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.IntakeProfile), args.Error(1)
}

func (m *IntakeRepositoryMock) Upsert(ctx context.Context, profile *entity.IntakeProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type PlanRepositoryMock struct {
	mock.Mock
}

func (m *PlanRepositoryMock) Save(ctx context.Context, plan *entity.GeneratedPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *PlanRepositoryMock) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.GeneratedPlan, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.GeneratedPlan), args.Error(1)
}

type CompletionClientMock struct {
	mock.Mock
}

func (m *CompletionClientMock) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
