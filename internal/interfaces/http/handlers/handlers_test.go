package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
	domainerrors "github.com/Viktoooor3190/fitapp-sub001/internal/domain/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
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

type enqueuerMock struct {
	mock.Mock
}

func (m *enqueuerMock) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

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

type intakeRepoMock struct {
	mock.Mock
}

func (m *intakeRepoMock) GetByUserID(ctx context.Context, userID string) (*entity.IntakeProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.IntakeProfile), args.Error(1)
}

func (m *intakeRepoMock) Upsert(ctx context.Context, profile *entity.IntakeProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func TestIntakeHandler(t *testing.T) {
	t.Run("full questionnaire is stored completed", func(t *testing.T) {
		repo := new(intakeRepoMock)
		h := NewIntakeHandler(repo)

		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *entity.IntakeProfile) bool {
			return p.UserID == "user-1" && p.Completed && p.Age == 30
		})).Return(nil).Once()

		router := gin.New()
		router.PUT("/v1/users/:id/intake", h.Upsert)

		body := `{"age":30,"weightKg":80,"heightCm":180,"goals":["strength"]}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/v1/users/user-1/intake", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		repo.AssertExpectations(t)
	})

	t.Run("questionnaire without goals is rejected", func(t *testing.T) {
		repo := new(intakeRepoMock)
		h := NewIntakeHandler(repo)

		router := gin.New()
		router.PUT("/v1/users/:id/intake", h.Upsert)

		body := `{"age":30,"weightKg":80,"heightCm":180}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/v1/users/user-1/intake", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("missing profile returns 404", func(t *testing.T) {
		repo := new(intakeRepoMock)
		h := NewIntakeHandler(repo)

		repo.On("GetByUserID", mock.Anything, "user-1").
			Return(nil, &domainerrors.NotFoundError{Entity: "intake profile", ID: "user-1"}).Once()

		router := gin.New()
		router.GET("/v1/users/:id/intake", h.Get)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/users/user-1/intake", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStatsHandler(t *testing.T) {
	t.Run("GetRevenueStats returns the snapshot", func(t *testing.T) {
		statsRepo := new(statsRepoMock)
		h := NewStatsHandler(statsRepo, new(enqueuerMock))

		statsRepo.On("GetRevenue", mock.Anything, "coach-1").
			Return(&entity.RevenueStats{CoachID: "coach-1", TotalRevenue: 250}, nil).Once()

		router := gin.New()
		router.GET("/v1/coaches/:id/stats", h.GetRevenueStats)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/coaches/coach-1/stats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalRevenue":250`)
	})

	t.Run("GetRevenueStats returns 404 when no snapshot exists", func(t *testing.T) {
		statsRepo := new(statsRepoMock)
		h := NewStatsHandler(statsRepo, new(enqueuerMock))

		statsRepo.On("GetRevenue", mock.Anything, "coach-1").
			Return(nil, domainerrors.ErrStatsNotFound).Once()

		router := gin.New()
		router.GET("/v1/coaches/:id/stats", h.GetRevenueStats)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/coaches/coach-1/stats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("RecomputeStats queues the shared recompute task", func(t *testing.T) {
		queue := new(enqueuerMock)
		h := NewStatsHandler(new(statsRepoMock), queue)

		queue.On("Enqueue", mock.MatchedBy(func(task *asynq.Task) bool {
			return task.Type() == "recompute:revenue" && strings.Contains(string(task.Payload()), "coach-1")
		})).Return(&asynq.TaskInfo{}, nil).Once()

		router := gin.New()
		router.POST("/v1/coaches/:id/stats/recompute", h.RecomputeStats)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/coaches/coach-1/stats/recompute", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusAccepted, w.Code)
		queue.AssertExpectations(t)
	})
}

func TestTransactionHandlerCreate(t *testing.T) {
	t.Run("valid request inserts a transaction", func(t *testing.T) {
		txRepo := new(transactionRepoMock)
		h := NewTransactionHandler(txRepo)

		txRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.CoachID == "coach-1" && tx.Amount == 100 && tx.IsPaid()
		})).Return(nil).Once()

		router := gin.New()
		router.POST("/v1/transactions", h.Create)

		body := `{"coachId":"coach-1","amount":100,"status":"paid","type":"one-time"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/transactions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		txRepo.AssertExpectations(t)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		txRepo := new(transactionRepoMock)
		h := NewTransactionHandler(txRepo)

		router := gin.New()
		router.POST("/v1/transactions", h.Create)

		body := `{"coachId":"coach-1","amount":100,"status":"refunded","type":"one-time"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/transactions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		txRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
