// internal/models/payment.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment tracks a Stripe Checkout Session from creation until the webhook
// confirms (or fails) it. Contract creation is gated on a completed legal-fee
// payment rather than on the client-driven redirect.
type Payment struct {
	BaseModel
	SessionID string      `json:"session_id" gorm:"size:255;uniqueIndex;not null"`
	Kind      PaymentKind `json:"kind" gorm:"type:varchar(20);not null"`

	UserID   uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	OfferID  *uuid.UUID `json:"offer_id" gorm:"type:uuid;index"`
	LawyerID *uuid.UUID `json:"lawyer_id" gorm:"type:uuid"`

	AmountCents int64         `json:"amount_cents" gorm:"not null"`
	Currency    string        `json:"currency" gorm:"size:10;default:'usd'"`
	Status      PaymentStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CompletedAt *time.Time    `json:"completed_at"`
}
