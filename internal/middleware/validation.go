package middleware

import (
	"net/http"

	"github.com/campuscope/campuscope/internal/app/models/dto"
	"github.com/campuscope/campuscope/internal/pkg/validation"
	"github.com/gin-gonic/gin"
)

// HandleValidationError writes a 400 envelope for a binding failure, naming the first bad field
func HandleValidationError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")
	if field, message, ok := validation.FirstFieldError(err); ok {
		detail = dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField(field)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

// BindJSON binds the request body into obj, answering 400 on failure
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		HandleValidationError(c, err)
		return false
	}
	return true
}

// BindQuery binds query parameters into obj, answering 400 on failure
func BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		HandleValidationError(c, err)
		return false
	}
	return true
}
