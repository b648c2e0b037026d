// internal/membership/service.go
package membership

import (
	"context"

	"iddirhub/internal/domain"
)

// RegistrationInput is what a self-registering visitor submits, together
// with the uploaded payment receipt.
type RegistrationInput struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Gender     string `json:"gender,omitempty"`
	Password   string `json:"password"`
	ReceiptURL string `json:"receiptUrl,omitempty"`
}

// Verification is the OTP challenge returned by StartRegistration. The
// code travels out of band (SMS in production); only the token comes back
// with the user's answer.
type Verification struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// Service defines the interface for the membership service.
type Service interface {
	GetMembers(ctx context.Context) ([]domain.Member, error)
	GetMember(ctx context.Context, id string) (*domain.Member, error)
	AddMember(ctx context.Context, m domain.Member) (*domain.Member, error)
	UpdateMember(ctx context.Context, m domain.Member) error
	DeleteMember(ctx context.Context, id string) error

	StartRegistration(ctx context.Context, input RegistrationInput) (*Verification, error)
	CompleteRegistration(ctx context.Context, token, code string) (*domain.Member, error)
	ApproveRegistration(ctx context.Context, id string) error
	RejectRegistration(ctx context.Context, id string) error

	Authenticate(ctx context.Context, email, password string) (*domain.Member, error)
}
