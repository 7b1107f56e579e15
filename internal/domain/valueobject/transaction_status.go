package valueobject

import (
	"errors"
)

var (
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
)

type TransactionStatus string

const (
	StatusPaid    TransactionStatus = "paid"
	StatusPending TransactionStatus = "pending"
	StatusFailed  TransactionStatus = "failed"
)

// NewTransactionStatus creates a new TransactionStatus value object
func NewTransactionStatus(status string) (TransactionStatus, error) {
	s := TransactionStatus(status)
	switch s {
	case StatusPaid, StatusPending, StatusFailed:
		return s, nil
	default:
		return "", ErrInvalidTransactionStatus
	}
}

// String returns the string representation of the status
func (s TransactionStatus) String() string {
	return string(s)
}

// IsPaid returns true if the transaction settled successfully
func (s TransactionStatus) IsPaid() bool {
	return s == StatusPaid
}

type TransactionType string

const (
	TypeSubscription TransactionType = "subscription"
	TypeOneTime      TransactionType = "one-time"
	TypePackage      TransactionType = "package"
)

// NewTransactionType creates a new TransactionType value object
func NewTransactionType(t string) (TransactionType, error) {
	tt := TransactionType(t)
	switch tt {
	case TypeSubscription, TypeOneTime, TypePackage:
		return tt, nil
	default:
		return "", ErrInvalidTransactionType
	}
}

// String returns the string representation of the type
func (t TransactionType) String() string {
	return string(t)
}

// IsRecurring returns true if the transaction represents a subscription charge
func (t TransactionType) IsRecurring() bool {
	return t == TypeSubscription
}
