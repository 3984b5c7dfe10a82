// internal/handlers/upload.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/remoteestate/backend/internal/services"
	"github.com/remoteestate/backend/internal/utils"
)

type UploadHandler struct {
	storageService *services.StorageService
}

func NewUploadHandler(storageService *services.StorageService) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
	}
}

// POST /upload-image
func (h *UploadHandler) UploadImage(c *gin.Context) {
	h.upload(c, h.storageService.ImageUploadOptions())
}

// POST /upload-document
func (h *UploadHandler) UploadDocument(c *gin.Context) {
	h.upload(c, h.storageService.DocumentUploadOptions())
}

func (h *UploadHandler) upload(c *gin.Context, options services.UploadOptions) {
	userID, ok := utils.GetUserUUIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "No file provided")
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadFile(file, header, userID.String(), options)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"url":       result.URL,
		"key":       result.Key,
		"size":      result.Size,
		"mime_type": result.MimeType,
	})
}
