// internal/services/lifecycle_test.go
package services

import (
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/remoteestate/backend/internal/config"
	"github.com/remoteestate/backend/internal/models"
)

// LifecycleTestSuite runs the seller/buyer/lawyer flow end to end against a
// real database. Set TEST_DATABASE_URL to run it, e.g.
// postgres://postgres@localhost:5432/remote_estate_test?sslmode=disable
type LifecycleTestSuite struct {
	suite.Suite
	db  *gorm.DB
	cfg *config.Config

	auth      *AuthService
	listings  *ListingService
	offers    *OfferService
	contracts *ContractService

	seller *models.User
	buyer  *models.User
	lawyer *models.User
}

func TestLifecycleSuite(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	suite.Run(t, new(LifecycleTestSuite))
}

func (s *LifecycleTestSuite) SetupSuite() {
	db, err := gorm.Open(postgres.Open(os.Getenv("TEST_DATABASE_URL")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.Offer{},
		&models.Contract{},
		&models.Payment{},
	))

	s.cfg = &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
	}

	storage, err := NewStorageService(s.cfg)
	s.Require().NoError(err)

	payments := NewPaymentService(db, s.cfg)
	s.auth = NewAuthService(db, s.cfg, storage, nil)
	s.listings = NewListingService(db, nil)
	s.offers = NewOfferService(db)
	s.contracts = NewContractService(db, payments)
}

func (s *LifecycleTestSuite) SetupTest() {
	for _, table := range []string{"payments", "contracts", "offers", "listings", "users"} {
		s.Require().NoError(s.db.Exec("DELETE FROM " + table).Error)
	}

	s.seller = s.signup("Alice", "seller")
	s.buyer = s.signup("Bob", "buyer")
	s.lawyer = s.signup("Carol", "lawyer")
}

func (s *LifecycleTestSuite) signup(name, role string) *models.User {
	req := &SignupRequest{
		Name:     name,
		Email:    fmt.Sprintf("%s-%s@example.com", name, uuid.NewString()[:8]),
		Password: "password123",
		UserType: models.UserRole(role),
	}
	if role == "lawyer" {
		req.LicenseNumber = "BAR-0001"
		req.BarAssociation = "Test Bar"
	}
	resp, err := s.auth.Signup(req)
	s.Require().NoError(err)
	return resp.User
}

func (s *LifecycleTestSuite) createListing() *models.Listing {
	listing, err := s.listings.CreateListing(s.seller.ID, &CreateListingRequest{
		Title:              "Beach House",
		Description:        "Sea view",
		PropertyType:       "house",
		Price:              500000,
		Currency:           "USD",
		Location:           "Faro",
		LawyerID:           s.lawyer.ID.String(),
		OwnershipDocuments: []string{"https://docs.example.com/deed.pdf"},
	})
	s.Require().NoError(err)
	return listing
}

func (s *LifecycleTestSuite) TestFullSaleFlow() {
	listing := s.createListing()

	// Supplying documents opens legal verification
	s.Require().NotNil(listing.LegalVerificationStatus)
	s.Equal(models.VerificationStatusPending, *listing.LegalVerificationStatus)

	// Lawyer approves the ownership documents
	verified, err := s.listings.UpdateVerification(listing.ID, s.lawyer.ID, &VerifyListingRequest{
		Status: models.VerificationStatusApproved,
	})
	s.Require().NoError(err)
	s.NotNil(verified.VerifiedAt)

	// Buyer makes an offer
	offer, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    450000,
		Message:   "cash buyer",
	})
	s.Require().NoError(err)
	s.Equal(models.OfferStatusPending, offer.Status)
	s.Equal("Bob", offer.BuyerName)

	// Seller accepts
	accepted, err := s.offers.UpdateStatus(offer.ID, s.seller.ID, &UpdateOfferRequest{
		Status: models.OfferStatusAccepted,
	})
	s.Require().NoError(err)
	s.Equal(models.OfferStatusAccepted, accepted.Status)

	// Buyer creates the contract (no payment gate: Stripe unconfigured)
	contract, err := s.contracts.CreateContract(s.buyer.ID, &CreateContractRequest{
		OfferID:  offer.ID.String(),
		LawyerID: s.lawyer.ID.String(),
	})
	s.Require().NoError(err)
	s.Equal(models.ContractStatusPendingReview, contract.Status)
	s.Equal("Beach House", contract.PropertyTitle)
	s.Equal(float64(450000), contract.SaleAmount)

	// The offer now points at its contract
	var reloaded models.Offer
	s.Require().NoError(s.db.First(&reloaded, offer.ID).Error)
	s.Require().NotNil(reloaded.ContractID)
	s.Equal(contract.ID, *reloaded.ContractID)

	// Lawyer approves the contract
	reviewed, err := s.contracts.ReviewContract(contract.ID, s.lawyer.ID, &ReviewContractRequest{
		Status:     models.ContractStatusApproved,
		LegalNotes: "clean title",
	})
	s.Require().NoError(err)
	s.Equal(models.ContractStatusApproved, reviewed.Status)
	s.NotNil(reviewed.ReviewedAt)
}

func (s *LifecycleTestSuite) TestOfferRetraction() {
	listing := s.createListing()

	offer, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    400000,
	})
	s.Require().NoError(err)

	// A stranger cannot retract it
	err = s.offers.RetractOffer(offer.ID, s.seller.ID)
	s.Require().Error(err)
	s.Contains(err.Error(), "unauthorized")

	// The buyer can, while it is pending
	s.Require().NoError(s.offers.RetractOffer(offer.ID, s.buyer.ID))

	var count int64
	s.db.Model(&models.Offer{}).Where("id = ?", offer.ID).Count(&count)
	s.Zero(count)
}

func (s *LifecycleTestSuite) TestRetractLeavesOtherBuyersOffersUntouched() {
	listing := s.createListing()
	dana := s.signup("Dana", "buyer")

	bobOffer, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    400000,
	})
	s.Require().NoError(err)
	danaOffer, err := s.offers.CreateOffer(dana.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    420000,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.offers.RetractOffer(bobOffer.ID, s.buyer.ID))

	// The other buyer's offer is untouched: same row, same status
	var remaining models.Offer
	s.Require().NoError(s.db.First(&remaining, danaOffer.ID).Error)
	s.Equal(danaOffer.ID, remaining.ID)
	s.Equal(dana.ID, remaining.BuyerID)
	s.Equal(models.OfferStatusPending, remaining.Status)
	s.Equal(float64(420000), remaining.Amount)

	// And it is the only offer left on the listing
	var count int64
	s.db.Model(&models.Offer{}).Where("listing_id = ?", listing.ID).Count(&count)
	s.EqualValues(1, count)
}

func (s *LifecycleTestSuite) TestCannotRetractAcceptedOffer() {
	listing := s.createListing()

	offer, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    400000,
	})
	s.Require().NoError(err)

	_, err = s.offers.UpdateStatus(offer.ID, s.seller.ID, &UpdateOfferRequest{
		Status: models.OfferStatusAccepted,
	})
	s.Require().NoError(err)

	err = s.offers.RetractOffer(offer.ID, s.buyer.ID)
	s.Require().Error(err)
	s.Contains(err.Error(), "already")
}

func (s *LifecycleTestSuite) TestOfferDecisionIsTerminal() {
	listing := s.createListing()

	offer, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    400000,
	})
	s.Require().NoError(err)

	_, err = s.offers.UpdateStatus(offer.ID, s.seller.ID, &UpdateOfferRequest{
		Status: models.OfferStatusDeclined,
	})
	s.Require().NoError(err)

	// Flipping the decision afterwards is rejected
	_, err = s.offers.UpdateStatus(offer.ID, s.seller.ID, &UpdateOfferRequest{
		Status: models.OfferStatusAccepted,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "already")
}

func (s *LifecycleTestSuite) TestOnlySellerRespondsToOffers() {
	listing := s.createListing()

	offer, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    400000,
	})
	s.Require().NoError(err)

	_, err = s.offers.UpdateStatus(offer.ID, s.buyer.ID, &UpdateOfferRequest{
		Status: models.OfferStatusAccepted,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "unauthorized")
}

func (s *LifecycleTestSuite) TestContractRequiresAcceptedOffer() {
	listing := s.createListing()

	offer, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    400000,
	})
	s.Require().NoError(err)

	_, err = s.contracts.CreateContract(s.buyer.ID, &CreateContractRequest{
		OfferID:  offer.ID.String(),
		LawyerID: s.lawyer.ID.String(),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "accepted")
}

func (s *LifecycleTestSuite) TestDuplicateContractIsConflict() {
	listing := s.createListing()

	offer, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    400000,
	})
	s.Require().NoError(err)

	_, err = s.offers.UpdateStatus(offer.ID, s.seller.ID, &UpdateOfferRequest{
		Status: models.OfferStatusAccepted,
	})
	s.Require().NoError(err)

	_, err = s.contracts.CreateContract(s.buyer.ID, &CreateContractRequest{
		OfferID:  offer.ID.String(),
		LawyerID: s.lawyer.ID.String(),
	})
	s.Require().NoError(err)

	_, err = s.contracts.CreateContract(s.buyer.ID, &CreateContractRequest{
		OfferID:  offer.ID.String(),
		LawyerID: s.lawyer.ID.String(),
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "already")
}

func (s *LifecycleTestSuite) TestContractReviewOnlyByAssignedLawyer() {
	listing := s.createListing()

	offer, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    400000,
	})
	s.Require().NoError(err)

	_, err = s.offers.UpdateStatus(offer.ID, s.seller.ID, &UpdateOfferRequest{
		Status: models.OfferStatusAccepted,
	})
	s.Require().NoError(err)

	contract, err := s.contracts.CreateContract(s.buyer.ID, &CreateContractRequest{
		OfferID:  offer.ID.String(),
		LawyerID: s.lawyer.ID.String(),
	})
	s.Require().NoError(err)

	otherLawyer := s.signup("Dave", "lawyer")
	_, err = s.contracts.ReviewContract(contract.ID, otherLawyer.ID, &ReviewContractRequest{
		Status: models.ContractStatusApproved,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "unauthorized")
}

func (s *LifecycleTestSuite) TestListingViewRedactsCompetingBuyers() {
	listing := s.createListing()

	secondBuyer := s.signup("Dana", "buyer")

	_, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    400000,
		Message:   "first",
	})
	s.Require().NoError(err)
	_, err = s.offers.CreateOffer(secondBuyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    420000,
		Message:   "second",
	})
	s.Require().NoError(err)

	// Seller sees everything
	asSeller, err := s.listings.GetListing(listing.ID, &s.seller.ID)
	s.Require().NoError(err)
	s.Require().Len(asSeller.Offers, 2)
	for _, o := range asSeller.Offers {
		s.NotEqual(uuid.Nil, o.BuyerID)
		s.NotEmpty(o.BuyerName)
	}

	// A buyer sees their own offer and redacted competitors
	asBuyer, err := s.listings.GetListing(listing.ID, &s.buyer.ID)
	s.Require().NoError(err)
	s.Require().Len(asBuyer.Offers, 2)
	for _, o := range asBuyer.Offers {
		if o.BuyerID == s.buyer.ID {
			s.Equal("Bob", o.BuyerName)
		} else {
			s.Equal(uuid.Nil, o.BuyerID)
			s.Empty(o.BuyerName)
			s.Empty(o.Message)
			s.NotZero(o.Amount)
		}
	}

	// Anonymous viewers see only amounts and statuses
	anon, err := s.listings.GetListing(listing.ID, nil)
	s.Require().NoError(err)
	for _, o := range anon.Offers {
		s.Equal(uuid.Nil, o.BuyerID)
		s.Empty(o.BuyerName)
	}
}

func (s *LifecycleTestSuite) TestMyOffersSurviveListingDeletion() {
	listing := s.createListing()

	_, err := s.offers.CreateOffer(s.buyer.ID, &CreateOfferRequest{
		ListingID: listing.ID.String(),
		Amount:    400000,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.listings.DeleteListing(listing.ID, s.seller.ID))

	offers, err := s.offers.GetMyOffers(s.buyer.ID)
	s.Require().NoError(err)
	s.Require().Len(offers, 1)
	s.Nil(offers[0].Listing)
}

func (s *LifecycleTestSuite) TestDuplicateSignupIsRejected() {
	req := &SignupRequest{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "password123",
		UserType: models.UserRoleBuyer,
	}
	_, err := s.auth.Signup(req)
	s.Require().NoError(err)

	_, err = s.auth.Signup(req)
	s.Require().Error(err)
	s.Contains(err.Error(), "already been registered")
}

func (s *LifecycleTestSuite) TestDeleteAccountRemovesListings() {
	listing := s.createListing()

	s.Require().NoError(s.auth.DeleteAccount(s.seller.ID))

	var count int64
	s.db.Model(&models.Listing{}).Where("id = ?", listing.ID).Count(&count)
	s.Zero(count)

	_, err := s.auth.GetUserByID(s.seller.ID)
	s.Require().Error(err)
	s.Contains(err.Error(), "not found")
}

func (s *LifecycleTestSuite) TestLawyerDirectory() {
	lawyers, err := s.auth.GetLawyers()
	s.Require().NoError(err)
	s.Require().Len(lawyers, 1)
	s.Equal("Carol", lawyers[0].Name)
	s.Equal("BAR-0001", lawyers[0].LicenseNumber)
}

func (s *LifecycleTestSuite) TestVerificationOnlyByAssignedLawyer() {
	listing := s.createListing()

	other := s.signup("Dave", "lawyer")
	_, err := s.listings.UpdateVerification(listing.ID, other.ID, &VerifyListingRequest{
		Status: models.VerificationStatusApproved,
	})
	s.Require().Error(err)
	s.Contains(err.Error(), "unauthorized")
}

func (s *LifecycleTestSuite) TestFallbackSearch() {
	s.createListing()

	result, err := s.listings.SearchListings("beach", "")
	s.Require().NoError(err)
	s.True(result.Fallback)
	s.Equal(1, result.NbHits)

	result, err = s.listings.SearchListings("castle", "")
	s.Require().NoError(err)
	s.Zero(result.NbHits)
}
