// internal/models/offer.go
package models

import (
	"github.com/google/uuid"
)

type Offer struct {
	BaseModel
	ListingID uuid.UUID `json:"listing_id" gorm:"type:uuid;not null;index"`
	BuyerID   uuid.UUID `json:"buyer_id" gorm:"type:uuid;not null;index"`
	BuyerName string    `json:"buyer_name" gorm:"size:255"`

	Amount  float64     `json:"amount" gorm:"not null"`
	Message string      `json:"message" gorm:"type:text"`
	Status  OfferStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`

	// Set once a contract has been created from this offer. At most one
	// contract may exist per offer.
	ContractID *uuid.UUID `json:"contract_id" gorm:"type:uuid"`
}

// OfferWithListing is the enriched view returned by the buyer's offer list.
type OfferWithListing struct {
	Offer
	Listing *ListingSummary `json:"listing"`
}
