// internal/models/contract.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract is the legal-review wrapper created from an accepted offer. The
// property fields are a snapshot taken at creation time; later listing edits
// do not flow back into the contract.
type Contract struct {
	BaseModel
	OfferID   uuid.UUID `json:"offer_id" gorm:"type:uuid;not null;uniqueIndex"`
	ListingID uuid.UUID `json:"listing_id" gorm:"type:uuid;not null;index"`

	BuyerID     uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;index"`
	BuyerName   string    `json:"buyer_name" gorm:"size:255"`
	SellerID    uuid.UUID `json:"seller_id" gorm:"type:uuid;not null;index"`
	SellerName  string    `json:"seller_name" gorm:"size:255"`
	LawyerID    uuid.UUID `json:"lawyer_id" gorm:"type:uuid;not null;index"`
	LawyerName  string    `json:"lawyer_name" gorm:"size:255"`
	LawyerEmail string    `json:"lawyer_email" gorm:"size:255"`

	PropertyTitle    string  `json:"property_title" gorm:"size:255"`
	PropertyLocation string  `json:"property_location" gorm:"size:255"`
	SaleAmount       float64 `json:"sale_amount"`
	Currency         string  `json:"currency" gorm:"size:10"`

	Status           ContractStatus `json:"status" gorm:"type:varchar(20);default:'pending_review'"`
	ContractDocument string         `json:"contract_document" gorm:"size:1024"`
	LegalNotes       string         `json:"legal_notes" gorm:"type:text"`
	ReviewedAt       *time.Time     `json:"reviewed_at"`
}
