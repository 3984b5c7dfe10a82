// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Enums
type UserRole string

const (
	UserRoleSeller UserRole = "seller"
	UserRoleBuyer  UserRole = "buyer"
	UserRoleLawyer UserRole = "lawyer"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleSeller, UserRoleBuyer, UserRoleLawyer:
		return true
	}
	return false
}

type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
)

// VerificationStatus is the legal verification sub-state of a listing's
// ownership documents. A listing created without documents has no status
// (NULL) until documents are supplied.
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationStatusPending, VerificationStatusApproved, VerificationStatusRejected:
		return true
	}
	return false
}

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusDeclined OfferStatus = "declined"
)

// CanTransitionTo reports whether an offer may move to the target status.
// Accepted and declined are terminal; a retracted offer is deleted outright
// rather than kept with a terminal status.
func (s OfferStatus) CanTransitionTo(target OfferStatus) bool {
	if s != OfferStatusPending {
		return false
	}
	return target == OfferStatusAccepted || target == OfferStatusDeclined
}

type ContractStatus string

const (
	ContractStatusPendingReview ContractStatus = "pending_review"
	ContractStatusApproved      ContractStatus = "approved"
	ContractStatusRejected      ContractStatus = "rejected"
)

// CanTransitionTo reports whether a contract may move to the target status.
// Approved and rejected are terminal.
func (s ContractStatus) CanTransitionTo(target ContractStatus) bool {
	if s != ContractStatusPendingReview {
		return false
	}
	return target == ContractStatusApproved || target == ContractStatusRejected
}

type PaymentKind string

const (
	PaymentKindLegalFee   PaymentKind = "legal_fee"
	PaymentKindListingFee PaymentKind = "listing_fee"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)
