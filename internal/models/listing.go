// internal/models/listing.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Listing struct {
	BaseModel
	SellerID   uuid.UUID `json:"seller_id" gorm:"type:uuid;not null;index"`
	SellerName string    `json:"seller_name" gorm:"size:255"`

	Title        string         `json:"title" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	PropertyType string         `json:"property_type" gorm:"size:50"`
	Price        float64        `json:"price" gorm:"not null"`
	Currency     string         `json:"currency" gorm:"size:10;default:'USD'"`
	Location     string         `json:"location" gorm:"size:255"`
	Images       pq.StringArray `json:"images" gorm:"type:text[]"`
	Bedrooms     int            `json:"bedrooms" gorm:"default:0"`
	Bathrooms    int            `json:"bathrooms" gorm:"default:0"`
	Area         float64        `json:"area" gorm:"default:0"`
	AcceptCrypto bool           `json:"accept_crypto" gorm:"default:false"`

	// Legal verification sub-state, mutated only by the assigned lawyer.
	LawyerID                *uuid.UUID          `json:"lawyer_id" gorm:"type:uuid;index"`
	LawyerName              string              `json:"lawyer_name" gorm:"size:255"`
	OwnershipDocuments      pq.StringArray      `json:"ownership_documents" gorm:"type:text[]"`
	ContractDocument        string              `json:"contract_document" gorm:"size:1024"`
	LegalVerificationStatus *VerificationStatus `json:"legal_verification_status" gorm:"type:varchar(20)"`
	VerificationNotes       string              `json:"verification_notes" gorm:"type:text"`
	VerifiedAt              *time.Time          `json:"verified_at"`

	Status ListingStatus `json:"status" gorm:"type:varchar(20);default:'active'"`

	// Offers live in their own table; this relation is the read-time join.
	Offers []Offer `json:"offers" gorm:"foreignKey:ListingID"`
}

// RedactOffersFor blanks buyer-identifying fields from the loaded offers
// unless the viewer owns the listing, is its assigned lawyer, or made the
// offer. Amount and status stay visible so public readers can still gauge
// interest on a property.
func (l *Listing) RedactOffersFor(viewerID *uuid.UUID) {
	if viewerID != nil {
		if *viewerID == l.SellerID {
			return
		}
		if l.LawyerID != nil && *viewerID == *l.LawyerID {
			return
		}
	}

	for i := range l.Offers {
		if viewerID != nil && l.Offers[i].BuyerID == *viewerID {
			continue
		}
		l.Offers[i].BuyerID = uuid.Nil
		l.Offers[i].BuyerName = ""
		l.Offers[i].Message = ""
	}
}

// ListingSummary is the denormalized slice of a listing attached to offer
// and contract views.
type ListingSummary struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Location     string         `json:"location"`
	Price        float64        `json:"price"`
	Currency     string         `json:"currency"`
	Images       pq.StringArray `json:"images"`
	PropertyType string         `json:"property_type"`
	SellerName   string         `json:"seller_name"`
}

func (l *Listing) Summary() ListingSummary {
	return ListingSummary{
		ID:           l.ID,
		Title:        l.Title,
		Location:     l.Location,
		Price:        l.Price,
		Currency:     l.Currency,
		Images:       l.Images,
		PropertyType: l.PropertyType,
		SellerName:   l.SellerName,
	}
}
