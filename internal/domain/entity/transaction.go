package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/valueobject"
)

// Transaction is a single payment or subscription charge recorded against a
// coach. The date is a pointer because imported records occasionally arrive
// without one; dateless paid transactions still count toward lifetime totals
// but are excluded from month buckets.
type Transaction struct {
	ID         string                        `bson:"_id" json:"id"`
	CoachID    string                        `bson:"coach_id" json:"coachId"`
	ClientID   string                        `bson:"client_id,omitempty" json:"clientId,omitempty"`
	ClientName string                        `bson:"client_name,omitempty" json:"clientName,omitempty"`
	Amount     float64                       `bson:"amount" json:"amount"`
	Status     valueobject.TransactionStatus `bson:"status" json:"status"`
	Type       valueobject.TransactionType   `bson:"type" json:"type"`
	Date       *time.Time                    `bson:"date,omitempty" json:"date,omitempty"`
	CreatedAt  time.Time                     `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time                     `bson:"updated_at" json:"updatedAt"`
}

// NewTransaction creates a new transaction entity
func NewTransaction(coachID string, amount float64, status valueobject.TransactionStatus, txType valueobject.TransactionType) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		ID:        uuid.New().String(),
		CoachID:   coachID,
		Amount:    amount,
		Status:    status,
		Type:      txType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPaid returns true if the transaction settled successfully
func (t *Transaction) IsPaid() bool {
	return t.Status.IsPaid()
}

// IsSubscription returns true if the transaction is a recurring subscription charge
func (t *Transaction) IsSubscription() bool {
	return t.Type.IsRecurring()
}

// SubscriberKey returns the identity used to count distinct subscribers:
// the client ID when present, the client name otherwise. Empty means the
// subscriber cannot be identified and is not counted.
func (t *Transaction) SubscriberKey() string {
	if t.ClientID != "" {
		return t.ClientID
	}
	return t.ClientName
}
