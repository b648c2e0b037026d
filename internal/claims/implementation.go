// internal/claims/implementation.go
package claims

import (
	"context"
	"fmt"

	"iddirhub/internal/domain"
	"iddirhub/pkg/kvstore"

	"github.com/google/uuid"
)

// service implements the Service interface.
type service struct {
	store *kvstore.Store
}

// NewService creates a new claims service instance.
func NewService(store *kvstore.Store) Service {
	return &service{store: store}
}

func (s *service) GetClaims(ctx context.Context) ([]domain.Claim, error) {
	var claims []domain.Claim
	if err := s.store.Get(ctx, domain.CollectionClaims, &claims); err != nil {
		return nil, fmt.Errorf("load claims: %w", err)
	}
	return claims, nil
}

func (s *service) MemberClaims(ctx context.Context, memberID string) ([]domain.Claim, error) {
	claims, err := s.GetClaims(ctx)
	if err != nil {
		return nil, err
	}
	var mine []domain.Claim
	for _, c := range claims {
		if c.MemberID == memberID {
			mine = append(mine, c)
		}
	}
	return mine, nil
}

// AddClaim files a new claim as PENDING with a service-assigned id and
// filing date.
func (s *service) AddClaim(ctx context.Context, input ClaimInput) (*domain.Claim, error) {
	claim := domain.Claim{
		ID:              uuid.NewString(),
		MemberID:        input.MemberID,
		MemberName:      input.MemberName,
		Type:            input.Type,
		Description:     input.Description,
		AmountRequested: input.AmountRequested,
		Status:          domain.ClaimPending,
		DateFiled:       domain.Today(),
	}

	err := s.store.Update(ctx, func(st *kvstore.Tx) error {
		var claims []domain.Claim
		if err := st.Get(domain.CollectionClaims, &claims); err != nil {
			return err
		}
		claims = append(claims, claim)
		return st.Set(domain.CollectionClaims, claims)
	})
	if err != nil {
		return nil, fmt.Errorf("add claim: %w", err)
	}
	return &claim, nil
}

// UpdateClaim sets the claim's status unconditionally, last write wins.
// Approval is a status change only: the payout is recorded separately as a
// CLAIM_PAYOUT transaction by the treasurer. An unknown id is a silent
// no-op.
func (s *service) UpdateClaim(ctx context.Context, id string, status domain.ClaimStatus) error {
	return s.store.Update(ctx, func(st *kvstore.Tx) error {
		var claims []domain.Claim
		if err := st.Get(domain.CollectionClaims, &claims); err != nil {
			return err
		}
		for i := range claims {
			if claims[i].ID == id {
				claims[i].Status = status
				return st.Set(domain.CollectionClaims, claims)
			}
		}
		return nil
	})
}
