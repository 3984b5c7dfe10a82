// internal/handlers/payment.go
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/remoteestate/backend/internal/services"
	"github.com/remoteestate/backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
	authService    *services.AuthService
}

func NewPaymentHandler(paymentService *services.PaymentService, authService *services.AuthService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		authService:    authService,
	}
}

// POST /create-checkout-session
// Opens a legal-fee checkout for the caller's accepted offer.
func (h *PaymentHandler) CreateLegalFeeCheckout(c *gin.Context) {
	userID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.LegalFeeCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	response, err := h.paymentService.CreateLegalFeeCheckout(userID, h.userEmail(c), &req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"sessionId": response.SessionID,
		"url":       response.URL,
	})
}

// POST /create-listing-checkout
func (h *PaymentHandler) CreateListingFeeCheckout(c *gin.Context) {
	userID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.ListingFeeCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	response, err := h.paymentService.CreateListingFeeCheckout(userID, h.userEmail(c), &req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"sessionId": response.SessionID,
		"url":       response.URL,
	})
}

// POST /webhooks/stripe
// Unauthenticated; trust comes from the Stripe-Signature header verified
// against the webhook secret.
func (h *PaymentHandler) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read request body")
		return
	}

	sigHeader := c.GetHeader("Stripe-Signature")
	if err := h.paymentService.HandleWebhook(payload, sigHeader); err != nil {
		logrus.WithError(err).Warn("Stripe webhook rejected")
		utils.BadRequestResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"received": true})
}

func (h *PaymentHandler) userEmail(c *gin.Context) string {
	userID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		return ""
	}
	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		return ""
	}
	return user.Email
}
