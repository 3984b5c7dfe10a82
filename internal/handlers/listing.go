// internal/handlers/listing.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/remoteestate/backend/internal/services"
	"github.com/remoteestate/backend/internal/utils"
)

type ListingHandler struct {
	listingService *services.ListingService
}

func NewListingHandler(listingService *services.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// POST /listings
func (h *ListingHandler) CreateListing(c *gin.Context) {
	sellerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	listing, err := h.listingService.CreateListing(sellerID, &req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"listing": listing})
}

// GET /listings
func (h *ListingHandler) GetListings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var viewerID *uuid.UUID
	if uid, ok := utils.GetUserUUIDFromContext(c); ok {
		viewerID = &uid
	}

	listings, total, err := h.listingService.GetListings(params, viewerID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(listings, total, params)
	utils.PaginatedResponse(c, "listings", result)
}

// GET /listings/:id
func (h *ListingHandler) GetListing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	// Viewer identity shapes offer redaction; unauthenticated viewers see
	// redacted offers.
	var viewerID *uuid.UUID
	if uid, ok := utils.GetUserUUIDFromContext(c); ok {
		viewerID = &uid
	}

	listing, err := h.listingService.GetListing(id, viewerID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"listing": listing})
}

// GET /listings/my
func (h *ListingHandler) GetMyListings(c *gin.Context) {
	sellerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	listings, err := h.listingService.GetMyListings(sellerID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"listings": listings})
}

// GET /listings/lawyer/assigned
func (h *ListingHandler) GetAssignedListings(c *gin.Context) {
	lawyerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	listings, err := h.listingService.GetAssignedListings(lawyerID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"listings": listings})
}

// PATCH /listings/:id/verify
func (h *ListingHandler) UpdateVerification(c *gin.Context) {
	lawyerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	var req services.VerifyListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	listing, err := h.listingService.UpdateVerification(listingID, lawyerID, &req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"listing": listing})
}

// DELETE /listings/:id
func (h *ListingHandler) DeleteListing(c *gin.Context) {
	sellerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid listing ID")
		return
	}

	if err := h.listingService.DeleteListing(id, sellerID); err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Listing deleted"})
}
