// internal/services/payment_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/remoteestate/backend/internal/config"
)

func TestPaymentServiceEnabled(t *testing.T) {
	disabled := NewPaymentService(nil, &config.Config{})
	assert.False(t, disabled.Enabled())

	enabled := NewPaymentService(nil, &config.Config{
		Payment: config.PaymentConfig{StripeSecretKey: "sk_test_123"},
	})
	assert.True(t, enabled.Enabled())
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	svc := NewPaymentService(nil, &config.Config{
		Payment: config.PaymentConfig{
			StripeSecretKey:     "sk_test_123",
			StripeWebhookSecret: "whsec_test",
		},
	})

	err := svc.HandleWebhook([]byte(`{"type":"checkout.session.completed"}`), "t=1,v1=bogus")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "signature")
}

func TestCheckoutRequiresConfiguredStripe(t *testing.T) {
	svc := NewPaymentService(nil, &config.Config{})

	_, err := svc.CreateLegalFeeCheckout(uuid.Nil, "", &LegalFeeCheckoutRequest{
		OfferID:  "00000000-0000-0000-0000-000000000001",
		LawyerID: "00000000-0000-0000-0000-000000000002",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
