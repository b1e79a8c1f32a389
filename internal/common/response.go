// File: internal/common/response.go
package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the standard envelope for successful API responses.
type SuccessResponse struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ErrorResponseWrapper is the standard envelope for error API responses.
type ErrorResponseWrapper struct {
	Status string    `json:"status"`
	Error  *APIError `json:"error"`
}

// RespondWithError sends an error response based on the error type.
func RespondWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.StatusCode, ErrorResponseWrapper{Status: "error", Error: apiErr})
		return
	}

	internal := ErrInternalServer.WithDetails(err.Error())
	c.AbortWithStatusJSON(internal.StatusCode, ErrorResponseWrapper{Status: "error", Error: internal})
}

// RespondSuccess sends a success response with the given status code.
func RespondSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{Status: "success", Message: message, Data: data})
}

// RespondOK sends a 200 response with data.
func RespondOK(c *gin.Context, message string, data interface{}) {
	RespondSuccess(c, http.StatusOK, message, data)
}

// RespondCreated sends a 201 response with data.
func RespondCreated(c *gin.Context, message string, data interface{}) {
	RespondSuccess(c, http.StatusCreated, message, data)
}

// RespondNoContent sends a 204 response.
func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// RespondPaginated sends a 200 response with data and pagination info.
func RespondPaginated(c *gin.Context, message string, data interface{}, pagination *Pagination) {
	c.JSON(http.StatusOK, SuccessResponse{
		Status:     "success",
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}
