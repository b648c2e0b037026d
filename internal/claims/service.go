// internal/claims/service.go
package claims

import (
	"context"

	"iddirhub/internal/domain"
)

// ClaimInput is what a member files; id, status and filing date are
// assigned by the service.
type ClaimInput struct {
	MemberID        string           `json:"memberId"`
	MemberName      string           `json:"memberName"`
	Type            domain.ClaimType `json:"type"`
	Description     string           `json:"description"`
	AmountRequested float64          `json:"amountRequested"`
}

// Service defines the interface for the claims service.
type Service interface {
	GetClaims(ctx context.Context) ([]domain.Claim, error)
	MemberClaims(ctx context.Context, memberID string) ([]domain.Claim, error)
	AddClaim(ctx context.Context, input ClaimInput) (*domain.Claim, error)
	UpdateClaim(ctx context.Context, id string, status domain.ClaimStatus) error
}
