// internal/services/payment_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"

	"github.com/remoteestate/backend/internal/config"
	"github.com/remoteestate/backend/internal/models"
	"github.com/remoteestate/backend/internal/utils"
)

type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

type LegalFeeCheckoutRequest struct {
	OfferID  string `json:"offerId" validate:"required"`
	LawyerID string `json:"lawyerId" validate:"required"`
}

type ListingFeeCheckoutRequest struct {
	ListingID string `json:"listingId,omitempty"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

func NewPaymentService(db *gorm.DB, config *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
	}
}

// Enabled reports whether the payment collaborator is configured. When it is
// not, checkout endpoints fail and the legal-fee gate is skipped.
func (s *PaymentService) Enabled() bool {
	return s.config.Payment.Enabled()
}

// CreateLegalFeeCheckout opens a Stripe Checkout Session for the legal
// service fee a buyer pays before a contract can be drawn up for their
// accepted offer.
func (s *PaymentService) CreateLegalFeeCheckout(userID uuid.UUID, userEmail string, req *LegalFeeCheckoutRequest) (*CheckoutResponse, error) {
	if !s.Enabled() {
		return nil, errors.New("payments are not configured")
	}

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
	if offer.BuyerID != userID {
		return nil, errors.New("unauthorized: you do not own this offer")
	}

	successURL := fmt.Sprintf("%s/contract-setup?session_id={CHECKOUT_SESSION_ID}&offer_id=%s&lawyer_id=%s",
		s.config.Frontend.BaseURL, offerID, lawyerID)
	cancelURL := fmt.Sprintf("%s/my-offers", s.config.Frontend.BaseURL)

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Legal Service Fee"),
						Description: stripe.String("Contract preparation and legal review"),
					},
					UnitAmount: stripe.Int64(s.config.Payment.LegalFeeCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if userEmail != "" {
		params.CustomerEmail = stripe.String(userEmail)
	}
	params.AddMetadata("kind", string(models.PaymentKindLegalFee))
	params.AddMetadata("user_id", userID.String())
	params.AddMetadata("offer_id", offerID.String())
	params.AddMetadata("lawyer_id", lawyerID.String())

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	payment := &models.Payment{
		SessionID:   sess.ID,
		Kind:        models.PaymentKindLegalFee,
		UserID:      userID,
		OfferID:     &offerID,
		LawyerID:    &lawyerID,
		AmountCents: s.config.Payment.LegalFeeCents,
		Currency:    "usd",
		Status:      models.PaymentStatusPending,
	}
	if err := s.db.Create(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	return &CheckoutResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

// CreateListingFeeCheckout opens a Stripe Checkout Session for the listing
// verification fee a seller pays.
func (s *PaymentService) CreateListingFeeCheckout(userID uuid.UUID, userEmail string, req *ListingFeeCheckoutRequest) (*CheckoutResponse, error) {
	if !s.Enabled() {
		return nil, errors.New("payments are not configured")
	}

	successURL := fmt.Sprintf("%s/my-listings?session_id={CHECKOUT_SESSION_ID}&payment=success",
		s.config.Frontend.BaseURL)
	cancelURL := fmt.Sprintf("%s/my-listings", s.config.Frontend.BaseURL)

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Listing Verification Fee"),
						Description: stripe.String("Property listing publication and verification"),
					},
					UnitAmount: stripe.Int64(s.config.Payment.ListingFeeCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if userEmail != "" {
		params.CustomerEmail = stripe.String(userEmail)
	}
	params.AddMetadata("kind", string(models.PaymentKindListingFee))
	params.AddMetadata("user_id", userID.String())
	if req.ListingID != "" {
		params.AddMetadata("listing_id", req.ListingID)
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	payment := &models.Payment{
		SessionID:   sess.ID,
		Kind:        models.PaymentKindListingFee,
		UserID:      userID,
		AmountCents: s.config.Payment.ListingFeeCents,
		Currency:    "usd",
		Status:      models.PaymentStatusPending,
	}
	if err := s.db.Create(payment).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	return &CheckoutResponse{SessionID: sess.ID, URL: sess.URL}, nil
}

// HandleWebhook verifies the Stripe signature and applies the event. Only
// checkout.session completion and expiry matter here; other events are
// acknowledged and dropped.
func (s *PaymentService) HandleWebhook(payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.config.Payment.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to parse checkout session: %w", err)
		}
		return s.markPayment(sess.ID, models.PaymentStatusCompleted)

	case "checkout.session.expired":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to parse checkout session: %w", err)
		}
		return s.markPayment(sess.ID, models.PaymentStatusFailed)

	default:
		logrus.WithField("event_type", event.Type).Debug("Ignoring unhandled Stripe event")
		return nil
	}
}

func (s *PaymentService) markPayment(sessionID string, status models.PaymentStatus) error {
	var payment models.Payment
	if err := s.db.Where("session_id = ?", sessionID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A session we never created; acknowledge so Stripe stops retrying.
			logrus.WithField("session_id", sessionID).Warn("Webhook for unknown checkout session")
			return nil
		}
		return fmt.Errorf("database error: %w", err)
	}

	payment.Status = status
	if status == models.PaymentStatusCompleted {
		now := time.Now()
		payment.CompletedAt = &now
	}

	if err := s.db.Save(&payment).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"session_id": sessionID,
		"kind":       payment.Kind,
		"status":     status,
	}).Info("Payment status updated")

	return nil
}

// LegalFeePaid reports whether a completed legal-fee payment exists for the
// offer. Contract creation is gated on this when payments are enabled.
func (s *PaymentService) LegalFeePaid(offerID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.Payment{}).
		Where("offer_id = ? AND kind = ? AND status = ?",
			offerID, models.PaymentKindLegalFee, models.PaymentStatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("database error: %w", err)
	}
	return count > 0, nil
}
