package ledger

import (
	"context"
	"fmt"
	"testing"

	"iddirhub/internal/domain"
	"iddirhub/pkg/kvstore"

	"pgregory.net/rapid"
)

// TestBalanceConsistency verifies that after an arbitrary sequence of
// AddTransaction and UpdateTransactionStatus calls, every member's balance
// equals the recomputed sum of effects of their COMPLETED transactions
// under the sign rule.
func TestBalanceConsistency(t *testing.T) {
	memberIDs := []string{"m1", "m2", "m3"}
	statuses := []domain.TransactionStatus{
		domain.TransactionPending,
		domain.TransactionCompleted,
		domain.TransactionRejected,
	}
	types := []domain.TransactionType{
		domain.TypeContribution,
		domain.TypeExpense,
		domain.TypePenalty,
		domain.TypeClaimPayout,
	}

	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()

		members := make([]domain.Member, len(memberIDs))
		for i, id := range memberIDs {
			members[i] = domain.Member{ID: id, Status: domain.MemberActive}
		}
		store, err := kvstore.Open(ctx, kvstore.NewMemoryBackend(), map[string]any{
			domain.CollectionMembers:      members,
			domain.CollectionTransactions: []domain.Transaction{},
		})
		if err != nil {
			rt.Fatalf("open store: %v", err)
		}
		svc := NewService(store)

		var txIDs []string
		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			label := fmt.Sprintf("step%d", i)
			if len(txIDs) == 0 || rapid.Bool().Draw(rt, label+"-add") {
				tx, err := svc.AddTransaction(ctx, domain.Transaction{
					MemberID: rapid.SampledFrom(memberIDs).Draw(rt, label+"-member"),
					Amount:   float64(rapid.IntRange(0, 500).Draw(rt, label+"-amount")),
					Type:     rapid.SampledFrom(types).Draw(rt, label+"-type"),
					Status:   rapid.SampledFrom(statuses).Draw(rt, label+"-status"),
				})
				if err != nil {
					rt.Fatalf("add transaction: %v", err)
				}
				txIDs = append(txIDs, tx.ID)
			} else {
				id := rapid.SampledFrom(txIDs).Draw(rt, label+"-id")
				status := rapid.SampledFrom(statuses).Draw(rt, label+"-next")
				if err := svc.UpdateTransactionStatus(ctx, id, status); err != nil {
					rt.Fatalf("update status: %v", err)
				}
			}
		}

		var txs []domain.Transaction
		if err := store.Get(ctx, domain.CollectionTransactions, &txs); err != nil {
			rt.Fatalf("load transactions: %v", err)
		}
		expected := make(map[string]float64, len(memberIDs))
		for _, tx := range txs {
			if tx.EffectiveStatus() != domain.TransactionCompleted {
				continue
			}
			delta := tx.Amount
			if tx.Type == domain.TypePenalty {
				delta = -delta
			}
			expected[tx.MemberID] += delta
		}

		if err := store.Get(ctx, domain.CollectionMembers, &members); err != nil {
			rt.Fatalf("load members: %v", err)
		}
		for _, m := range members {
			if m.Balance != expected[m.ID] {
				rt.Fatalf("member %s balance %v, want %v", m.ID, m.Balance, expected[m.ID])
			}
		}
	})
}
