// internal/handlers/offer.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/remoteestate/backend/internal/services"
	"github.com/remoteestate/backend/internal/utils"
)

type OfferHandler struct {
	offerService *services.OfferService
}

func NewOfferHandler(offerService *services.OfferService) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
	}
}

// POST /offers
func (h *OfferHandler) CreateOffer(c *gin.Context) {
	buyerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	offer, err := h.offerService.CreateOffer(buyerID, &req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"offer": offer})
}

// GET /offers/my
func (h *OfferHandler) GetMyOffers(c *gin.Context) {
	buyerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	offers, err := h.offerService.GetMyOffers(buyerID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"offers": offers})
}

// PATCH /offers/:id
func (h *OfferHandler) UpdateOffer(c *gin.Context) {
	sellerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid offer ID")
		return
	}

	var req services.UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	offer, err := h.offerService.UpdateStatus(offerID, sellerID, &req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"offer": offer})
}

// DELETE /offers/:id
func (h *OfferHandler) RetractOffer(c *gin.Context) {
	buyerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	offerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid offer ID")
		return
	}

	if err := h.offerService.RetractOffer(offerID, buyerID); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Offer retracted"})
}
