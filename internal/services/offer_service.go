// internal/services/offer_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/remoteestate/backend/internal/models"
	"github.com/remoteestate/backend/internal/utils"
)

type OfferService struct {
	db *gorm.DB
}

type CreateOfferRequest struct {
	ListingID string  `json:"listingId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,min=0.01"`
	Message   string  `json:"message,omitempty"`
}

type UpdateOfferRequest struct {
	Status models.OfferStatus `json:"status" validate:"required,oneof=accepted declined"`
}

func NewOfferService(db *gorm.DB) *OfferService {
	return &OfferService{db: db}
}

func (s *OfferService) CreateOffer(buyerID uuid.UUID, req *CreateOfferRequest) (*models.Offer, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return nil, errors.New("invalid listing ID")
	}

	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("listing not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var buyer models.User
	if err := s.db.First(&buyer, buyerID).Error; err != nil {
		return nil, fmt.Errorf("buyer not found: %w", err)
	}

	offer := &models.Offer{
		ListingID: listing.ID,
		BuyerID:   buyerID,
		BuyerName: buyer.Name,
		Amount:    req.Amount,
		Message:   req.Message,
		Status:    models.OfferStatusPending,
	}

	if err := s.db.Create(offer).Error; err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	return offer, nil
}

// GetMyOffers returns the buyer's offers enriched with a listing summary.
// The listing may be nil when the seller has since deleted it.
func (s *OfferService) GetMyOffers(buyerID uuid.UUID) ([]models.OfferWithListing, error) {
	var offers []models.Offer
	if err := s.db.Where("buyer_id = ?", buyerID).
		Order("created_at DESC").Find(&offers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch offers: %w", err)
	}

	enriched := make([]models.OfferWithListing, 0, len(offers))
	for _, offer := range offers {
		entry := models.OfferWithListing{Offer: offer}

		var listing models.Listing
		if err := s.db.First(&listing, offer.ListingID).Error; err == nil {
			summary := listing.Summary()
			entry.Listing = &summary
		}

		enriched = append(enriched, entry)
	}

	return enriched, nil
}

// UpdateStatus applies a seller's accept or decline decision. Only pending
// offers can move; accepted and declined are terminal.
func (s *OfferService) UpdateStatus(offerID, sellerID uuid.UUID, req *UpdateOfferRequest) (*models.Offer, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var offer models.Offer
	if err := s.db.First(&offer, offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("offer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var listing models.Listing
	if err := s.db.First(&listing, offer.ListingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("listing not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if listing.SellerID != sellerID {
		return nil, errors.New("unauthorized: only the listing's seller can respond to this offer")
	}

	if !offer.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("offer is already %s", offer.Status)
	}

	offer.Status = req.Status
	if err := s.db.Save(&offer).Error; err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}

	return &offer, nil
}

// RetractOffer deletes the buyer's pending offer outright. There is no
// tombstone; a retracted offer simply disappears.
func (s *OfferService) RetractOffer(offerID, buyerID uuid.UUID) error {
	var offer models.Offer
	if err := s.db.First(&offer, offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("offer not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if offer.BuyerID != buyerID {
		return errors.New("unauthorized: you do not own this offer")
	}

	if offer.Status != models.OfferStatusPending {
		return fmt.Errorf("cannot retract an offer that is already %s", offer.Status)
	}

	if err := s.db.Delete(&offer).Error; err != nil {
		return fmt.Errorf("failed to retract offer: %w", err)
	}

	return nil
}
