// internal/ledger/service.go
package ledger

import (
	"context"

	"iddirhub/internal/domain"
)

// Service defines the interface for the ledger service.
type Service interface {
	AddTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error)
	GetTransactions(ctx context.Context) ([]domain.Transaction, error)
	MemberTransactions(ctx context.Context, memberID string) ([]domain.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, id string, status domain.TransactionStatus) error
	TotalFunds(ctx context.Context) (float64, error)
}
