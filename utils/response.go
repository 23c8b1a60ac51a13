package utils

import (
	"net/http"

	"prioritix/model"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Message string             `json:"message"`
	Errors  []model.FieldError `json:"errors,omitempty"`
}

// Success responses
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error responses
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, &ErrorResponse{Message: message})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, &ErrorResponse{Message: message})
}

func ValidationFailed(c *gin.Context, verr *model.ValidationError) {
	c.JSON(http.StatusBadRequest, &ErrorResponse{
		Message: "Validation failed",
		Errors:  verr.Fields,
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, &ErrorResponse{Message: message})
}

func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, &ErrorResponse{Message: message})
}

func PayloadTooLarge(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, &ErrorResponse{Message: "Request body too large"})
}

// InternalError never echoes the underlying error to the caller.
func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, &ErrorResponse{Message: "Server error"})
}

func ServiceUnavailable(c *gin.Context, data interface{}) {
	c.JSON(http.StatusServiceUnavailable, data)
}
