// internal/ledger/implementation.go
package ledger

import (
	"context"
	"fmt"

	"iddirhub/internal/domain"
	"iddirhub/pkg/kvstore"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// service implements the Service interface.
type service struct {
	store  *kvstore.Store
	tracer trace.Tracer
}

// NewService creates a new ledger service instance.
func NewService(store *kvstore.Store) Service {
	return &service{
		store:  store,
		tracer: otel.Tracer("iddirhub/ledger"),
	}
}

// AddTransaction appends a transaction. A transaction that is already
// COMPLETED at creation time is credited immediately, except for
// registration-fee entries: those are credited by the membership lifecycle
// on approval, and crediting them here too would double-count.
func (s *service) AddTransaction(ctx context.Context, tx domain.Transaction) (*domain.Transaction, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.add_transaction",
		trace.WithAttributes(
			attribute.String("transaction.type", string(tx.Type)),
			attribute.Float64("transaction.amount", tx.Amount),
		),
	)
	defer span.End()

	if tx.Amount < 0 {
		return nil, fmt.Errorf("transaction amount must not be negative, got %v", tx.Amount)
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.Date == "" {
		tx.Date = domain.Today()
	}
	if tx.Status == "" {
		tx.Status = domain.TransactionCompleted
	}

	err := s.store.Update(ctx, func(st *kvstore.Tx) error {
		var txs []domain.Transaction
		if err := st.Get(domain.CollectionTransactions, &txs); err != nil {
			return err
		}
		txs = append(txs, tx)
		if err := st.Set(domain.CollectionTransactions, txs); err != nil {
			return err
		}

		if tx.Status == domain.TransactionCompleted && tx.MemberID != domain.SystemMemberID && !tx.IsRegistrationFee() {
			return applyBalanceEffect(st, tx, false)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add transaction: %w", err)
	}
	return &tx, nil
}

func (s *service) GetTransactions(ctx context.Context) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := s.store.Get(ctx, domain.CollectionTransactions, &txs); err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return txs, nil
}

// MemberTransactions returns the member's history. A linear scan is
// sufficient at this data scale; no index is maintained.
func (s *service) MemberTransactions(ctx context.Context, memberID string) ([]domain.Transaction, error) {
	txs, err := s.GetTransactions(ctx)
	if err != nil {
		return nil, err
	}
	var mine []domain.Transaction
	for _, tx := range txs {
		if tx.MemberID == memberID {
			mine = append(mine, tx)
		}
	}
	return mine, nil
}

// UpdateTransactionStatus moves a transaction to status and applies the
// balance rule on the effective transition:
//
//	not COMPLETED -> COMPLETED  apply the effect
//	COMPLETED -> not COMPLETED  reverse the effect
//	anything else               no balance change
//
// An unknown id is a silent no-op: UI call sites may race with stale lists
// and must be safe to retry.
func (s *service) UpdateTransactionStatus(ctx context.Context, id string, status domain.TransactionStatus) error {
	ctx, span := s.tracer.Start(ctx, "ledger.update_transaction_status",
		trace.WithAttributes(
			attribute.String("transaction.id", id),
			attribute.String("transaction.status", string(status)),
		),
	)
	defer span.End()

	return s.store.Update(ctx, func(st *kvstore.Tx) error {
		var txs []domain.Transaction
		if err := st.Get(domain.CollectionTransactions, &txs); err != nil {
			return err
		}

		idx := -1
		for i := range txs {
			if txs[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			span.SetAttributes(attribute.Bool("transaction.found", false))
			return nil
		}

		previous := txs[idx].EffectiveStatus()
		txs[idx].Status = status
		tx := txs[idx]
		if err := st.Set(domain.CollectionTransactions, txs); err != nil {
			return err
		}

		if tx.MemberID == domain.SystemMemberID {
			return nil
		}
		if previous != domain.TransactionCompleted && status == domain.TransactionCompleted {
			return applyBalanceEffect(st, tx, false)
		}
		if previous == domain.TransactionCompleted && status != domain.TransactionCompleted {
			return applyBalanceEffect(st, tx, true)
		}
		return nil
	})
}

// TotalFunds sums every COMPLETED transaction on top of the association's
// opening balance. Recomputed on every call.
func (s *service) TotalFunds(ctx context.Context) (float64, error) {
	txs, err := s.GetTransactions(ctx)
	if err != nil {
		return 0, err
	}
	total := float64(domain.OpeningBalance)
	for _, tx := range txs {
		if tx.EffectiveStatus() == domain.TransactionCompleted {
			total += tx.Amount
		}
	}
	return total, nil
}

// applyBalanceEffect adjusts the member's balance for tx. A PENALTY
// subtracts where every other type adds; reverse negates the whole effect.
// A missing member is a no-op, matching the silent tolerance of the status
// path.
func applyBalanceEffect(st *kvstore.Tx, tx domain.Transaction, reverse bool) error {
	var members []domain.Member
	if err := st.Get(domain.CollectionMembers, &members); err != nil {
		return err
	}

	idx := -1
	for i := range members {
		if members[i].ID == tx.MemberID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	delta := tx.Amount
	if tx.Type == domain.TypePenalty {
		delta = -delta
	}
	if reverse {
		delta = -delta
	}

	members[idx].Balance += delta
	return st.Set(domain.CollectionMembers, members)
}
