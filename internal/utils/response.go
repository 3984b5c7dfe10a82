// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Payload fields sit at the top level on success; failures carry a single
// `error` string.

func SuccessResponse(c *gin.Context, data gin.H) {
	c.JSON(http.StatusOK, data)
}

func CreatedResponse(c *gin.Context, data gin.H) {
	c.JSON(http.StatusCreated, data)
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func BadRequestResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	ErrorResponse(c, http.StatusBadRequest, message)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = "You do not have permission to perform this action"
	}
	ErrorResponse(c, http.StatusForbidden, message)
}

func NotFoundResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Not found"
	}
	ErrorResponse(c, http.StatusNotFound, message)
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, message)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, message)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	message := "Invalid input"
	if len(errors) > 0 {
		message = errors[0].Message
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message, "details": errors})
}

func PaginatedResponse(c *gin.Context, key string, result PaginationResult) {
	SetPaginationHeaders(c, result)
	c.JSON(http.StatusOK, gin.H{
		key: result.Data,
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}

// GetUserUUIDFromContext parses the authenticated caller's id. The second
// return is false when the request is unauthenticated or the claim is
// malformed.
func GetUserUUIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := GetUserIDFromContext(c)
	if !exists {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	if userRole, exists := c.Get("user_role"); exists {
		if roleStr, ok := userRole.(string); ok {
			return roleStr, true
		}
	}
	return "", false
}

func GetUserNameFromContext(c *gin.Context) string {
	if name, exists := c.Get("user_name"); exists {
		if nameStr, ok := name.(string); ok {
			return nameStr
		}
	}
	return ""
}
