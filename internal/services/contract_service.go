// internal/services/contract_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/remoteestate/backend/internal/database"
	"github.com/remoteestate/backend/internal/models"
	"github.com/remoteestate/backend/internal/utils"
)

type ContractService struct {
	db       *gorm.DB
	payments *PaymentService
}

type CreateContractRequest struct {
	OfferID  string `json:"offerId" validate:"required"`
	LawyerID string `json:"lawyerId" validate:"required"`
}

type ReviewContractRequest struct {
	Status     models.ContractStatus `json:"status" validate:"required,oneof=approved rejected"`
	LegalNotes string                `json:"legalNotes,omitempty"`
}

func NewContractService(db *gorm.DB, payments *PaymentService) *ContractService {
	return &ContractService{
		db:       db,
		payments: payments,
	}
}

// CreateContract turns an accepted offer into a contract under legal review.
// At most one contract exists per offer; a second attempt is a conflict. When
// payments are enabled the buyer must have a completed legal-fee payment for
// the offer.
func (s *ContractService) CreateContract(buyerID uuid.UUID, req *CreateContractRequest) (*models.Contract, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	offerID, err := uuid.Parse(req.OfferID)
	if err != nil {
		return nil, errors.New("invalid offer ID")
	}
	lawyerID, err := uuid.Parse(req.LawyerID)
	if err != nil {
		return nil, errors.New("invalid lawyer ID")
	}

	var offer models.Offer
	if err := s.db.First(&offer, offerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("offer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if offer.BuyerID != buyerID {
		return nil, errors.New("unauthorized: you do not own this offer")
	}
	if offer.Status != models.OfferStatusAccepted {
		return nil, fmt.Errorf("offer must be accepted before a contract can be created, current status is %s", offer.Status)
	}
	if offer.ContractID != nil {
		return nil, errors.New("a contract already exists for this offer")
	}

	var listing models.Listing
	if err := s.db.First(&listing, offer.ListingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("listing not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var lawyer models.User
	if err := s.db.First(&lawyer, lawyerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("lawyer not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if lawyer.Role != models.UserRoleLawyer {
		return nil, errors.New("selected user is not a lawyer")
	}

	// Gate on the legal fee only when the payment collaborator is configured.
	if s.payments != nil && s.payments.Enabled() {
		paid, err := s.payments.LegalFeePaid(offerID)
		if err != nil {
			return nil, err
		}
		if !paid {
			return nil, errors.New("legal service fee has not been paid for this offer")
		}
	}

	var buyer models.User
	if err := s.db.First(&buyer, buyerID).Error; err != nil {
		return nil, fmt.Errorf("buyer not found: %w", err)
	}

	contract := &models.Contract{
		OfferID:          offer.ID,
		ListingID:        listing.ID,
		BuyerID:          buyer.ID,
		BuyerName:        buyer.Name,
		SellerID:         listing.SellerID,
		SellerName:       listing.SellerName,
		LawyerID:         lawyer.ID,
		LawyerName:       lawyer.Name,
		LawyerEmail:      lawyer.Email,
		PropertyTitle:    listing.Title,
		PropertyLocation: listing.Location,
		SaleAmount:       offer.Amount,
		Currency:         listing.Currency,
		Status:           models.ContractStatusPendingReview,
	}

	err = database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(contract).Error; err != nil {
			return fmt.Errorf("failed to create contract: %w", err)
		}
		offer.ContractID = &contract.ID
		if err := tx.Save(&offer).Error; err != nil {
			return fmt.Errorf("failed to link contract to offer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return contract, nil
}

// GetMyContracts returns the contracts a user participates in as buyer or
// seller, newest first.
func (s *ContractService) GetMyContracts(userID uuid.UUID) ([]models.Contract, error) {
	var contracts []models.Contract
	if err := s.db.Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("created_at DESC").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch contracts: %w", err)
	}
	return contracts, nil
}

// GetContractsForReview returns the contracts assigned to a lawyer.
func (s *ContractService) GetContractsForReview(lawyerID uuid.UUID) ([]models.Contract, error) {
	var contracts []models.Contract
	if err := s.db.Where("lawyer_id = ?", lawyerID).
		Order("created_at DESC").Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch contracts: %w", err)
	}
	return contracts, nil
}

func (s *ContractService) GetContract(contractID uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	if err := s.db.First(&contract, contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contract not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &contract, nil
}

// ReviewContract records the assigned lawyer's approve or reject decision.
// pending_review is the only state a decision can leave from; approved and
// rejected are terminal.
func (s *ContractService) ReviewContract(contractID, lawyerID uuid.UUID, req *ReviewContractRequest) (*models.Contract, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var contract models.Contract
	if err := s.db.First(&contract, contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contract not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if contract.LawyerID != lawyerID {
		return nil, errors.New("unauthorized: you are not assigned to this contract")
	}

	if !contract.Status.CanTransitionTo(req.Status) {
		return nil, fmt.Errorf("contract has already been %s", contract.Status)
	}

	now := time.Now()
	contract.Status = req.Status
	contract.LegalNotes = req.LegalNotes
	contract.ReviewedAt = &now

	if err := s.db.Save(&contract).Error; err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}

	return &contract, nil
}

// AttachDocument records the URL of a drafted contract document uploaded by
// the assigned lawyer.
func (s *ContractService) AttachDocument(contractID, lawyerID uuid.UUID, documentURL string) (*models.Contract, error) {
	if documentURL == "" {
		return nil, errors.New("document URL is required")
	}

	var contract models.Contract
	if err := s.db.First(&contract, contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contract not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if contract.LawyerID != lawyerID {
		return nil, errors.New("unauthorized: you are not assigned to this contract")
	}

	contract.ContractDocument = documentURL
	if err := s.db.Save(&contract).Error; err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}

	return &contract, nil
}
