package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/webhook"
	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/repository"
	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/valueobject"
	"github.com/Viktoooor3190/fitapp-sub001/internal/infrastructure/logging"
)

// WebhookHandler turns Stripe payment events into transaction documents.
// The change-stream dispatcher picks the insert up like any other write, so
// webhook-recorded payments flow into the coach's stats untouched.
type WebhookHandler struct {
	secret       string
	transactions repository.TransactionRepository
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(secret string, transactions repository.TransactionRepository) *WebhookHandler {
	return &WebhookHandler{
		secret:       secret,
		transactions: transactions,
	}
}

// StripeWebhook records paid transactions from payment_intent.succeeded
// events. Unknown event types are acknowledged and ignored; Stripe retries
// anything that does not get a 2xx.
func (h *WebhookHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), h.secret)
	if err != nil {
		logging.GetLogger(c).Warn("stripe signature verification failed", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	if event.Type != "payment_intent.succeeded" {
		c.Status(http.StatusOK)
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		logging.GetLogger(c).Error("failed to decode payment intent", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}

	coachID := intent.Metadata["coach_id"]
	if coachID == "" {
		logging.GetLogger(c).Warn("payment intent without coach_id metadata, skipping",
			zap.String("payment_intent", intent.ID),
		)
		c.Status(http.StatusOK)
		return
	}

	txType := valueobject.TypeOneTime
	if t, err := valueobject.NewTransactionType(intent.Metadata["type"]); err == nil {
		txType = t
	}

	now := time.Now().UTC()
	tx := &entity.Transaction{
		ID:         uuid.New().String(),
		CoachID:    coachID,
		ClientID:   intent.Metadata["client_id"],
		ClientName: intent.Metadata["client_name"],
		Amount:     float64(intent.Amount) / 100.0,
		Status:     valueobject.StatusPaid,
		Type:       txType,
		Date:       &now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.transactions.Create(c.Request.Context(), tx); err != nil {
		logging.GetLogger(c).Error("failed to record stripe payment",
			zap.String("payment_intent", intent.ID),
			zap.Error(err),
		)
		// Non-2xx so Stripe redelivers; the insert is the source of truth
		// for revenue.
		c.Status(http.StatusInternalServerError)
		return
	}

	logging.GetLogger(c).Info("stripe payment recorded",
		zap.String("payment_intent", intent.ID),
		zap.String("coach_id", coachID),
		zap.Float64("amount", tx.Amount),
	)
	c.Status(http.StatusOK)
}
