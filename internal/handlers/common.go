// internal/handlers/common.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/remoteestate/backend/internal/utils"
)

// serviceErrorResponse maps service-layer error messages onto HTTP status
// codes. Services express outcomes in their error strings; this is the single
// place that translation happens.
func serviceErrorResponse(c *gin.Context, err error) {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "not found"):
		utils.NotFoundResponse(c, msg)
	case strings.Contains(msg, "unauthorized"):
		utils.ForbiddenResponse(c, msg)
	case strings.Contains(msg, "already"):
		utils.ConflictResponse(c, msg)
	case strings.Contains(msg, "validation failed"),
		strings.Contains(msg, "invalid"),
		strings.Contains(msg, "required"),
		strings.Contains(msg, "cannot"),
		strings.Contains(msg, "must be"),
		strings.Contains(msg, "is not"),
		strings.Contains(msg, "not configured"),
		strings.Contains(msg, "has not been paid"):
		utils.BadRequestResponse(c, msg)
	default:
		utils.InternalErrorResponse(c, msg)
	}
}
