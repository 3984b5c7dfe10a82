// internal/services/listing_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/remoteestate/backend/internal/models"
	"github.com/remoteestate/backend/internal/search"
	"github.com/remoteestate/backend/internal/utils"
)

type ListingService struct {
	db    *gorm.DB
	index search.Index
}

type CreateListingRequest struct {
	Title              string   `json:"title" validate:"required,min=3,max=255"`
	Description        string   `json:"description"`
	PropertyType       string   `json:"propertyType"`
	Price              float64  `json:"price" validate:"required,min=0.01"`
	Currency           string   `json:"currency" validate:"omitempty,currency_code"`
	Location           string   `json:"location"`
	Images             []string `json:"images,omitempty"`
	Bedrooms           int      `json:"bedrooms" validate:"min=0"`
	Bathrooms          int      `json:"bathrooms" validate:"min=0"`
	Area               float64  `json:"area" validate:"min=0"`
	AcceptCrypto       bool     `json:"acceptCrypto"`
	LawyerID           string   `json:"lawyerId,omitempty"`
	OwnershipDocuments []string `json:"ownershipDocuments,omitempty"`
}

type VerifyListingRequest struct {
	Status            models.VerificationStatus `json:"status" validate:"required"`
	VerificationNotes string                    `json:"verificationNotes,omitempty"`
}

type SearchResult struct {
	Listings interface{} `json:"listings"`
	NbHits   int         `json:"nbHits"`
	Fallback bool        `json:"fallback"`
}

func NewListingService(db *gorm.DB, index search.Index) *ListingService {
	return &ListingService{
		db:    db,
		index: index,
	}
}

func (s *ListingService) CreateListing(sellerID uuid.UUID, req *CreateListingRequest) (*models.Listing, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Verify seller exists
	var seller models.User
	if err := s.db.First(&seller, sellerID).Error; err != nil {
		return nil, fmt.Errorf("seller not found: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	listing := &models.Listing{
		SellerID:           sellerID,
		SellerName:         seller.Name,
		Title:              req.Title,
		Description:        req.Description,
		PropertyType:       req.PropertyType,
		Price:              req.Price,
		Currency:           currency,
		Location:           req.Location,
		Images:             req.Images,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		Area:               req.Area,
		AcceptCrypto:       req.AcceptCrypto,
		OwnershipDocuments: req.OwnershipDocuments,
		Status:             models.ListingStatusActive,
	}

	// Resolve the chosen lawyer, when one was picked at creation time
	if req.LawyerID != "" {
		lawyerID, err := uuid.Parse(req.LawyerID)
		if err != nil {
			return nil, errors.New("invalid lawyer ID")
		}
		var lawyer models.User
		if err := s.db.First(&lawyer, lawyerID).Error; err != nil {
			return nil, errors.New("lawyer not found")
		}
		if lawyer.Role != models.UserRoleLawyer {
			return nil, errors.New("selected user is not a lawyer")
		}
		listing.LawyerID = &lawyer.ID
		listing.LawyerName = lawyer.Name
	}

	// Supplying ownership documents opens the legal verification flow
	if len(req.OwnershipDocuments) > 0 {
		listing.ContractDocument = req.OwnershipDocuments[0]
		pending := models.VerificationStatusPending
		listing.LegalVerificationStatus = &pending
	}

	if err := s.db.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	// Index for search, best-effort: an indexing failure must never fail
	// the create.
	if s.index != nil {
		if err := s.index.SaveDocument(listingDocument(listing)); err != nil {
			logrus.WithError(err).WithField("listing_id", listing.ID).
				Warn("Failed to index listing in search")
		}
	}

	return listing, nil
}

func (s *ListingService) GetListings(params utils.PaginationParams, viewerID *uuid.UUID) ([]models.Listing, int64, error) {
	query := s.db.Model(&models.Listing{}).Where("status = ?", models.ListingStatusActive)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "price", "area"})
	query = utils.ApplyPagination(query, params)

	var listings []models.Listing
	if err := query.Preload("Offers").Find(&listings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch listings: %w", err)
	}

	for i := range listings {
		listings[i].RedactOffersFor(viewerID)
	}

	return listings, total, nil
}

// GetListing loads a listing with its offers joined at read time. Buyer
// identity on the offers is redacted for viewers who are neither the
// seller, the assigned lawyer, nor the offer's own buyer.
func (s *ListingService) GetListing(id uuid.UUID, viewerID *uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.Preload("Offers").First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("listing not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	listing.RedactOffersFor(viewerID)
	return &listing, nil
}

func (s *ListingService) GetMyListings(sellerID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.db.Where("seller_id = ?", sellerID).
		Preload("Offers").Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch listings: %w", err)
	}
	return listings, nil
}

// GetAssignedListings returns the listings a lawyer has been chosen to
// verify.
func (s *ListingService) GetAssignedListings(lawyerID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.db.Where("lawyer_id = ?", lawyerID).
		Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch assigned listings: %w", err)
	}
	return listings, nil
}

// UpdateVerification moves the legal verification sub-state. Only the
// assigned lawyer may call it; verifiedAt is stamped when the status leaves
// pending and cleared when it returns there.
func (s *ListingService) UpdateVerification(listingID, lawyerID uuid.UUID, req *VerifyListingRequest) (*models.Listing, error) {
	if !req.Status.Valid() {
		return nil, errors.New("invalid verification status")
	}

	var listing models.Listing
	if err := s.db.First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("listing not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if listing.LawyerID == nil || *listing.LawyerID != lawyerID {
		return nil, errors.New("unauthorized: you are not assigned to this listing")
	}

	status := req.Status
	listing.LegalVerificationStatus = &status
	listing.VerificationNotes = req.VerificationNotes
	if status != models.VerificationStatusPending {
		now := time.Now()
		listing.VerifiedAt = &now
	} else {
		listing.VerifiedAt = nil
	}

	if err := s.db.Save(&listing).Error; err != nil {
		return nil, fmt.Errorf("failed to update listing verification: %w", err)
	}

	return &listing, nil
}

// DeleteListing hard-deletes the record. Offers and contracts pointing at
// it are not cleaned up; readers of those records tolerate the dangling
// reference.
func (s *ListingService) DeleteListing(id, sellerID uuid.UUID) error {
	var listing models.Listing
	if err := s.db.First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("listing not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if listing.SellerID != sellerID {
		return errors.New("unauthorized: you do not own this listing")
	}

	if err := s.db.Delete(&listing).Error; err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	if s.index != nil {
		if err := s.index.DeleteDocument(listing.ID.String()); err != nil {
			logrus.WithError(err).WithField("listing_id", listing.ID).
				Warn("Failed to remove listing from search index")
		}
	}

	return nil
}

// SearchListings queries the search collaborator and degrades to a
// substring scan of the record store when the index is absent or failing.
func (s *ListingService) SearchListings(query, filters string) (*SearchResult, error) {
	if s.index != nil {
		hits, nbHits, err := s.index.Search(query, filters)
		if err == nil {
			return &SearchResult{Listings: hits, NbHits: nbHits, Fallback: false}, nil
		}
		logrus.WithError(err).Warn("Search index query failed, falling back to store scan")
	}

	var listings []models.Listing
	if err := s.db.Where("status = ?", models.ListingStatusActive).Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}

	results := search.FilterListings(listings, query, filters)
	return &SearchResult{Listings: results, NbHits: len(results), Fallback: true}, nil
}

func listingDocument(l *models.Listing) search.Document {
	return search.Document{
		"objectID":      l.ID.String(),
		"title":         l.Title,
		"description":   l.Description,
		"property_type": l.PropertyType,
		"price":         l.Price,
		"currency":      l.Currency,
		"location":      l.Location,
		"bedrooms":      l.Bedrooms,
		"bathrooms":     l.Bathrooms,
		"area":          l.Area,
		"accept_crypto": l.AcceptCrypto,
		"status":        string(l.Status),
		"created_at":    l.CreatedAt.Unix(),
	}
}
