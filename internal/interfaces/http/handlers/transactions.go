package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
	domainerrors "github.com/Viktoooor3190/fitapp-sub001/internal/domain/errors"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/repository"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/valueobject"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/logging"
	"github.com/Viktoooor3190/fitapp-sub001/internal/interfaces/http/response"
)

// TransactionHandler manages the transaction collection. Statistics stay out
// of these handlers on purpose: the change-stream dispatcher reacts to the
// writes, so the API and any other writer share one recompute path.
type TransactionHandler struct {
	transactions repository.TransactionRepository
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions repository.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

type transactionRequest struct {
	CoachID    string     `json:"coachId" binding:"required"`
	ClientID   string     `json:"clientId"`
	ClientName string     `json:"clientName"`
	Amount     float64    `json:"amount" binding:"min=0"`
	Status     string     `json:"status" binding:"required"`
	Type       string     `json:"type" binding:"required"`
	Date       *time.Time `json:"date"`
}

func (r *transactionRequest) toEntity(id string) (*entity.Transaction, error) {
	status, err := valueobject.NewTransactionStatus(r.Status)
	if err != nil {
		return nil, err
	}
	txType, err := valueobject.NewTransactionType(r.Type)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &entity.Transaction{
		ID:         id,
		CoachID:    r.CoachID,
		ClientID:   r.ClientID,
		ClientName: r.ClientName,
		Amount:     r.Amount,
		Status:     status,
		Type:       txType,
		Date:       r.Date,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Create records a new transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tx, err := req.toEntity(uuid.New().String())
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.transactions.Create(c.Request.Context(), tx); err != nil {
		logging.GetLogger(c).Error("failed to create transaction", zap.Error(err))
		response.InternalError(c, "failed to create transaction")
		return
	}

	response.Created(c, tx)
}

// Update replaces an existing transaction
func (h *TransactionHandler) Update(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tx, err := req.toEntity(c.Param("id"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.transactions.Update(c.Request.Context(), tx); err != nil {
		if errors.Is(err, domainerrors.ErrTransactionNotFound) {
			response.NotFound(c, "transaction not found")
			return
		}
		logging.GetLogger(c).Error("failed to update transaction", zap.Error(err))
		response.InternalError(c, "failed to update transaction")
		return
	}

	response.OK(c, tx)
}

// Delete removes a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	if _, err := h.transactions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domainerrors.ErrTransactionNotFound) {
			response.NotFound(c, "transaction not found")
			return
		}
		logging.GetLogger(c).Error("failed to delete transaction", zap.Error(err))
		response.InternalError(c, "failed to delete transaction")
		return
	}

	response.NoContent(c)
}

// Get returns a single transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	tx, err := h.transactions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainerrors.ErrTransactionNotFound) {
			response.NotFound(c, "transaction not found")
			return
		}
		logging.GetLogger(c).Error("failed to fetch transaction", zap.Error(err))
		response.InternalError(c, "failed to fetch transaction")
		return
	}

	response.OK(c, tx)
}

// ListByCoach returns a coach's full transaction history
func (h *TransactionHandler) ListByCoach(c *gin.Context) {
	txs, err := h.transactions.ListByCoach(c.Request.Context(), c.Param("id"))
	if err != nil {
		logging.GetLogger(c).Error("failed to list transactions", zap.Error(err))
		response.InternalError(c, "failed to list transactions")
		return
	}

	response.OK(c, txs)
}
