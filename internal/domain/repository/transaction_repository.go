package repository

import (
	"context"

	"github.com/Viktoooor3190/fitapp-sub001/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction data access
type TransactionRepository interface {
	// Create creates a new transaction
	Create(ctx context.Context, tx *entity.Transaction) error

	// Update replaces an existing transaction
	Update(ctx context.Context, tx *entity.Transaction) error

	// Delete removes a transaction and returns the deleted record
	Delete(ctx context.Context, id string) (*entity.Transaction, error)

	// GetByID retrieves a transaction by ID
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// ListByCoach retrieves the full transaction history for a coach.
	// Implementations must drain the underlying cursor completely; a partial
	// scan corrupts every derived metric.
	ListByCoach(ctx context.Context, coachID string) ([]*entity.Transaction, error)
}
