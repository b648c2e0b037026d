// Package domain holds the entity model shared by every service: members,
// transactions, claims and the content records (settings, gallery,
// leadership). The ledger and membership services both read and write the
// members and transactions collections, so the types live here rather than
// in either service package.
package domain

import (
	"strings"
	"time"
)

// Collection keys as persisted by the store.
const (
	CollectionMembers      = "members"
	CollectionTransactions = "transactions"
	CollectionClaims       = "claims"
	CollectionSettings     = "settings"
	CollectionGallery      = "gallery"
	CollectionLeadership   = "leadership"
)

// OpeningBalance is the association's fund balance predating any recorded
// transaction.
const OpeningBalance = 10000

// RegistrationFee is the fixed initial contribution required to activate a
// new member.
const RegistrationFee = 2200

// SystemMemberID marks association-level transactions (general expenses,
// payouts) that belong to no individual member and never touch a balance.
const SystemMemberID = "SYSTEM"

// DateLayout is the ISO date form used for all date fields.
const DateLayout = "2006-01-02"

// Today returns the current date in DateLayout form.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleTreasurer        Role = "TREASURER"
	RoleSecretary        Role = "SECRETARY"
	RoleCommunityService Role = "COMMUNITY_SERVICE"
	RoleMember           Role = "MEMBER"
	RoleGuest            Role = "GUEST"
)

type MemberStatus string

const (
	MemberActive   MemberStatus = "ACTIVE"
	MemberInactive MemberStatus = "INACTIVE"
	MemberPending  MemberStatus = "PENDING"
	MemberRejected MemberStatus = "REJECTED"
)

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionRejected  TransactionStatus = "REJECTED"
)

type TransactionType string

const (
	TypeContribution TransactionType = "CONTRIBUTION"
	TypeExpense      TransactionType = "EXPENSE"
	TypePenalty      TransactionType = "PENALTY"
	TypeClaimPayout  TransactionType = "CLAIM_PAYOUT"
)

// TransactionPurpose tags transactions whose lifecycle is driven by another
// flow. Registration-fee transactions are completed by the membership
// lifecycle, not by the ledger's add path.
type TransactionPurpose string

const PurposeRegistrationFee TransactionPurpose = "REGISTRATION_FEE"

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "PENDING"
	ClaimApproved ClaimStatus = "APPROVED"
	ClaimRejected ClaimStatus = "REJECTED"
)

type ClaimType string

const (
	ClaimFuneral ClaimType = "FUNERAL"
	ClaimMedical ClaimType = "MEDICAL"
	ClaimWedding ClaimType = "WEDDING"
	ClaimOther   ClaimType = "OTHER"
)

// NotificationPreferences controls which notifications a member receives.
type NotificationPreferences struct {
	Email bool              `json:"email"`
	SMS   bool              `json:"sms"`
	Types NotificationTypes `json:"types"`
}

type NotificationTypes struct {
	Meetings bool `json:"meetings"`
	Payments bool `json:"payments"`
	News     bool `json:"news"`
}

// DefaultNotificationPreferences back-fills records created before the
// preference fields existed.
func DefaultNotificationPreferences() *NotificationPreferences {
	return &NotificationPreferences{
		Email: true,
		SMS:   true,
		Types: NotificationTypes{Meetings: true, Payments: true, News: true},
	}
}

// Member is one association member. Balance is positive when the
// association holds credit on the member's behalf, negative for debt, and
// is mutated only by the ledger's balance rule (plus administrative edit).
type Member struct {
	ID                      string                   `json:"id"`
	FullName                string                   `json:"fullName"`
	Email                   string                   `json:"email"`
	Phone                   string                   `json:"phone"`
	Role                    Role                     `json:"role"`
	Status                  MemberStatus             `json:"status"`
	JoinDate                string                   `json:"joinDate"`
	Balance                 float64                  `json:"balance"`
	AvatarURL               string                   `json:"avatarUrl,omitempty"`
	Gender                  string                   `json:"gender,omitempty"`
	PasswordHash            string                   `json:"passwordHash,omitempty"`
	PasswordSalt            string                   `json:"passwordSalt,omitempty"`
	NotificationPreferences *NotificationPreferences `json:"notificationPreferences,omitempty"`
}

// Redacted returns a copy safe to serve over the API.
func (m Member) Redacted() Member {
	m.PasswordHash = ""
	m.PasswordSalt = ""
	return m
}

// Transaction is one money movement. Amount is never negative; the sign of
// the balance effect derives from Type.
type Transaction struct {
	ID          string             `json:"id"`
	MemberID    string             `json:"memberId"`
	MemberName  string             `json:"memberName,omitempty"`
	Date        string             `json:"date"`
	Amount      float64            `json:"amount"`
	Type        TransactionType    `json:"type"`
	Purpose     TransactionPurpose `json:"purpose,omitempty"`
	Description string             `json:"description"`
	Status      TransactionStatus  `json:"status,omitempty"`
	ReceiptURL  string             `json:"receiptUrl,omitempty"`
}

// EffectiveStatus treats legacy records without a status as COMPLETED.
func (t Transaction) EffectiveStatus() TransactionStatus {
	if t.Status == "" {
		return TransactionCompleted
	}
	return t.Status
}

// IsRegistrationFee reports whether t is the initial registration-fee
// transaction for its member. Records written before the purpose tag
// existed are recognized by their description.
func (t Transaction) IsRegistrationFee() bool {
	if t.Purpose == PurposeRegistrationFee {
		return true
	}
	return strings.Contains(t.Description, "Initial Registration") ||
		strings.Contains(t.Description, "Initial Payment")
}

// Claim is a member's request for a benefit payout. Approval is a status
// change only; the payout itself is recorded as a separate transaction.
type Claim struct {
	ID              string      `json:"id"`
	MemberID        string      `json:"memberId"`
	MemberName      string      `json:"memberName"`
	Type            ClaimType   `json:"type"`
	Description     string      `json:"description"`
	AmountRequested float64     `json:"amountRequested"`
	Status          ClaimStatus `json:"status"`
	DateFiled       string      `json:"dateFiled"`
}

// Settings holds site-wide presentation configuration.
type Settings struct {
	HeroBgURL  string `json:"heroBgUrl"`
	LoginBgURL string `json:"loginBgUrl"`
	LogoURL    string `json:"logoUrl,omitempty"`
}

type GalleryItem struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
}

type LeadershipMember struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	RoleKey string `json:"roleKey"`
	ImgURL  string `json:"imgUrl"`
}
