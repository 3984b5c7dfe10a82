// internal/handlers/contract.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/remoteestate/backend/internal/services"
	"github.com/remoteestate/backend/internal/utils"
)

type ContractHandler struct {
	contractService *services.ContractService
	storageService  *services.StorageService
}

func NewContractHandler(contractService *services.ContractService, storageService *services.StorageService) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		storageService:  storageService,
	}
}

// POST /contracts
func (h *ContractHandler) CreateContract(c *gin.Context) {
	buyerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req services.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	contract, err := h.contractService.CreateContract(buyerID, &req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"contract": contract})
}

// GET /contracts/my
func (h *ContractHandler) GetMyContracts(c *gin.Context) {
	userID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	contracts, err := h.contractService.GetMyContracts(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"contracts": contracts})
}

// GET /contracts/review
func (h *ContractHandler) GetContractsForReview(c *gin.Context) {
	lawyerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	contracts, err := h.contractService.GetContractsForReview(lawyerID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"contracts": contracts})
}

// GET /contracts/:id
// Only the contract's buyer, seller or assigned lawyer may read it.
func (h *ContractHandler) GetContract(c *gin.Context) {
	userID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid contract ID")
		return
	}

	contract, err := h.contractService.GetContract(contractID)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	if contract.BuyerID != userID && contract.SellerID != userID && contract.LawyerID != userID {
		utils.ForbiddenResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{"contract": contract})
}

// PATCH /contracts/:id
func (h *ContractHandler) ReviewContract(c *gin.Context) {
	lawyerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid contract ID")
		return
	}

	var req services.ReviewContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	contract, err := h.contractService.ReviewContract(contractID, lawyerID, &req)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"contract": contract})
}

// PATCH /contracts/:id/upload
// The assigned lawyer uploads a drafted contract document; the stored URL is
// attached to the contract record.
func (h *ContractHandler) UploadContractDocument(c *gin.Context) {
	lawyerID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	contractID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid contract ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided")
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, lawyerID.String(), h.storageService.DocumentUploadOptions())
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	contract, err := h.contractService.AttachDocument(contractID, lawyerID, result.URL)
	if err != nil {
		serviceErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"contract": contract, "upload": result})
}
