// internal/membership/implementation.go
package membership

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"iddirhub/internal/domain"
	"iddirhub/pkg/kvstore"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrNotPending         = errors.New("member is not pending registration")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// service implements the Service interface.
type service struct {
	store       *kvstore.Store
	rateLimiter *rate.Limiter
	otp         *otpRegistry
	tracer      trace.Tracer
}

// NewService creates a new membership service instance.
func NewService(store *kvstore.Store) Service {
	return &service{
		store:       store,
		rateLimiter: rate.NewLimiter(rate.Every(1*time.Minute), 5), // 5 registrations per minute
		otp:         newOTPRegistry(5 * time.Minute),
		tracer:      otel.Tracer("iddirhub/membership"),
	}
}

func (s *service) GetMembers(ctx context.Context) ([]domain.Member, error) {
	var members []domain.Member
	if err := s.store.Get(ctx, domain.CollectionMembers, &members); err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	return members, nil
}

// GetMember returns nil without error when no member has the id; only the
// lifecycle entry points treat a missing member as an error.
func (s *service) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	members, err := s.GetMembers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].ID == id {
			return &members[i], nil
		}
	}
	return nil, nil
}

// AddMember records an administratively created member. Administrative
// adds are ACTIVE immediately and carry no paired registration
// transaction.
func (s *service) AddMember(ctx context.Context, m domain.Member) (*domain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "membership.add_member")
	defer span.End()

	err := s.store.Update(ctx, func(st *kvstore.Tx) error {
		var members []domain.Member
		if err := st.Get(domain.CollectionMembers, &members); err != nil {
			return err
		}
		if m.ID == "" {
			m.ID = nextSequentialID(members)
		}
		if m.Status == "" {
			m.Status = domain.MemberActive
		}
		if m.Role == "" {
			m.Role = domain.RoleMember
		}
		if m.JoinDate == "" {
			m.JoinDate = domain.Today()
		}
		if m.NotificationPreferences == nil {
			m.NotificationPreferences = domain.DefaultNotificationPreferences()
		}
		members = append(members, m)
		return st.Set(domain.CollectionMembers, members)
	})
	if err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}
	span.SetAttributes(attribute.String("member.id", m.ID))
	return &m, nil
}

// UpdateMember replaces the stored record wholesale, including an
// administrative balance override. Unknown ids are a silent no-op.
func (s *service) UpdateMember(ctx context.Context, m domain.Member) error {
	ctx, span := s.tracer.Start(ctx, "membership.update_member",
		trace.WithAttributes(attribute.String("member.id", m.ID)),
	)
	defer span.End()

	return s.store.Update(ctx, func(st *kvstore.Tx) error {
		var members []domain.Member
		if err := st.Get(domain.CollectionMembers, &members); err != nil {
			return err
		}
		for i := range members {
			if members[i].ID == m.ID {
				if m.NotificationPreferences == nil {
					m.NotificationPreferences = members[i].NotificationPreferences
				}
				if m.PasswordHash == "" {
					m.PasswordHash = members[i].PasswordHash
					m.PasswordSalt = members[i].PasswordSalt
				}
				members[i] = m
				return st.Set(domain.CollectionMembers, members)
			}
		}
		return nil
	})
}

func (s *service) DeleteMember(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(st *kvstore.Tx) error {
		var members []domain.Member
		if err := st.Get(domain.CollectionMembers, &members); err != nil {
			return err
		}
		kept := members[:0]
		for _, m := range members {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		return st.Set(domain.CollectionMembers, kept)
	})
}

// StartRegistration validates the input and issues an OTP challenge. The
// member record is only created once the code verifies.
func (s *service) StartRegistration(ctx context.Context, input RegistrationInput) (*Verification, error) {
	_, span := s.tracer.Start(ctx, "membership.start_registration")
	defer span.End()

	if !s.rateLimiter.Allow() {
		return nil, ErrRateLimited
	}
	if input.FullName == "" || input.Phone == "" {
		return nil, fmt.Errorf("full name and phone are required")
	}
	if input.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	challenge, err := s.otp.issue(input)
	if err != nil {
		return nil, fmt.Errorf("issue verification code: %w", err)
	}
	// The delivery channel is out of scope; surface the code in the log
	// the way an SMS gateway stub would.
	log.Printf("membership: verification code for %s: %s", input.Phone, challenge.code)
	return &Verification{
		Token:     challenge.token,
		ExpiresAt: challenge.expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// CompleteRegistration consumes a verified OTP and creates the PENDING
// member together with its PENDING registration-fee transaction, as one
// uninterrupted mutation.
func (s *service) CompleteRegistration(ctx context.Context, token, code string) (*domain.Member, error) {
	ctx, span := s.tracer.Start(ctx, "membership.complete_registration")
	defer span.End()

	input, err := s.otp.redeem(token, code)
	if err != nil {
		return nil, err
	}

	hash, salt, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	member := domain.Member{
		ID:                      fmt.Sprintf("m%d", time.Now().UnixMilli()),
		FullName:                input.FullName,
		Email:                   input.Email,
		Phone:                   input.Phone,
		Gender:                  input.Gender,
		Role:                    domain.RoleMember,
		Status:                  domain.MemberPending,
		JoinDate:                domain.Today(),
		Balance:                 0,
		PasswordHash:            hash,
		PasswordSalt:            salt,
		NotificationPreferences: domain.DefaultNotificationPreferences(),
	}
	feeTx := domain.Transaction{
		ID:          uuid.NewString(),
		MemberID:    member.ID,
		MemberName:  member.FullName,
		Date:        domain.Today(),
		Amount:      domain.RegistrationFee,
		Type:        domain.TypeContribution,
		Purpose:     domain.PurposeRegistrationFee,
		Description: "Initial Registration Fee",
		Status:      domain.TransactionPending,
		ReceiptURL:  input.ReceiptURL,
	}

	err = s.store.Update(ctx, func(st *kvstore.Tx) error {
		var members []domain.Member
		if err := st.Get(domain.CollectionMembers, &members); err != nil {
			return err
		}
		members = append(members, member)
		if err := st.Set(domain.CollectionMembers, members); err != nil {
			return err
		}

		var txs []domain.Transaction
		if err := st.Get(domain.CollectionTransactions, &txs); err != nil {
			return err
		}
		txs = append(txs, feeTx)
		return st.Set(domain.CollectionTransactions, txs)
	})
	if err != nil {
		return nil, fmt.Errorf("register member: %w", err)
	}

	span.SetAttributes(attribute.String("member.id", member.ID))
	return &member, nil
}

// ApproveRegistration activates a pending member and settles the
// registration fee: the paired PENDING transaction is completed and its
// amount credited; when no such transaction exists (data anomaly), a
// COMPLETED one is fabricated for the standard fee so the books still
// balance. A member that is not PENDING is refused outright, so a repeated
// approval can never credit twice.
func (s *service) ApproveRegistration(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "membership.approve_registration",
		trace.WithAttributes(attribute.String("member.id", id)),
	)
	defer span.End()

	return s.store.Update(ctx, func(st *kvstore.Tx) error {
		var members []domain.Member
		if err := st.Get(domain.CollectionMembers, &members); err != nil {
			return err
		}
		idx := memberIndex(members, id)
		if idx == -1 {
			return fmt.Errorf("approve registration %s: %w", id, ErrMemberNotFound)
		}
		if members[idx].Status != domain.MemberPending {
			return fmt.Errorf("approve registration %s: %w", id, ErrNotPending)
		}
		members[idx].Status = domain.MemberActive

		var txs []domain.Transaction
		if err := st.Get(domain.CollectionTransactions, &txs); err != nil {
			return err
		}
		txIdx := registrationTxIndex(txs, id)
		if txIdx != -1 {
			txs[txIdx].Status = domain.TransactionCompleted
			members[idx].Balance += txs[txIdx].Amount
		} else {
			span.SetAttributes(attribute.Bool("registration_fee.fabricated", true))
			members[idx].Balance += domain.RegistrationFee
			txs = append(txs, domain.Transaction{
				ID:          uuid.NewString(),
				MemberID:    id,
				MemberName:  members[idx].FullName,
				Date:        domain.Today(),
				Amount:      domain.RegistrationFee,
				Type:        domain.TypeContribution,
				Purpose:     domain.PurposeRegistrationFee,
				Description: "Initial Registration Fee",
				Status:      domain.TransactionCompleted,
			})
		}

		if err := st.Set(domain.CollectionMembers, members); err != nil {
			return err
		}
		return st.Set(domain.CollectionTransactions, txs)
	})
}

// RejectRegistration marks the member REJECTED and rejects the paired
// PENDING registration transaction. The transaction was never COMPLETED,
// so no balance moves.
func (s *service) RejectRegistration(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "membership.reject_registration",
		trace.WithAttributes(attribute.String("member.id", id)),
	)
	defer span.End()

	return s.store.Update(ctx, func(st *kvstore.Tx) error {
		var members []domain.Member
		if err := st.Get(domain.CollectionMembers, &members); err != nil {
			return err
		}
		idx := memberIndex(members, id)
		if idx == -1 {
			return fmt.Errorf("reject registration %s: %w", id, ErrMemberNotFound)
		}
		if members[idx].Status != domain.MemberPending {
			return fmt.Errorf("reject registration %s: %w", id, ErrNotPending)
		}
		members[idx].Status = domain.MemberRejected
		if err := st.Set(domain.CollectionMembers, members); err != nil {
			return err
		}

		var txs []domain.Transaction
		if err := st.Get(domain.CollectionTransactions, &txs); err != nil {
			return err
		}
		if txIdx := registrationTxIndex(txs, id); txIdx != -1 {
			txs[txIdx].Status = domain.TransactionRejected
			return st.Set(domain.CollectionTransactions, txs)
		}
		return nil
	})
}

// Authenticate verifies a member's credentials and returns the member if
// successful.
func (s *service) Authenticate(ctx context.Context, email, password string) (*domain.Member, error) {
	members, err := s.GetMembers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if !strings.EqualFold(members[i].Email, email) {
			continue
		}
		ok, err := verifyPassword(password, members[i].PasswordSalt, members[i].PasswordHash)
		if err != nil || !ok {
			return nil, ErrInvalidCredentials
		}
		return &members[i], nil
	}
	return nil, ErrInvalidCredentials
}

func memberIndex(members []domain.Member, id string) int {
	for i := range members {
		if members[i].ID == id {
			return i
		}
	}
	return -1
}

// registrationTxIndex finds the member's PENDING registration-fee
// transaction.
func registrationTxIndex(txs []domain.Transaction, memberID string) int {
	for i := range txs {
		if txs[i].MemberID == memberID &&
			txs[i].IsRegistrationFee() &&
			txs[i].EffectiveStatus() == domain.TransactionPending {
			return i
		}
	}
	return -1
}

// nextSequentialID produces the next human-readable id in the m00001
// series, skipping over timestamp-form ids from self-registration.
func nextSequentialID(members []domain.Member) string {
	max := 0
	for _, m := range members {
		if !strings.HasPrefix(m.ID, "m") || len(m.ID) != 6 {
			continue
		}
		n, err := strconv.Atoi(m.ID[1:])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("m%05d", max+1)
}
