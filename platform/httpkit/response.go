// Package httpkit provides HTTP response utilities.
// This is part of the platform layer and contains no business logic.
package httpkit

import (
	"net/http"

	"kisan_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error       string      `json:"error"`
	Details     interface{} `json:"details,omitempty"`
	RawResponse string      `json:"raw_response,omitempty"`
	Progress    interface{} `json:"progress,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// Error sends an error response with the given status code and message.
func Error(c *gin.Context, status int, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// OK sends a 200 OK response with the given payload.
func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// HandleError maps domain errors to HTTP responses.
// If the error chain holds an *apperr.Error, its Kind decides the status code.
// Untyped errors are treated as internal failures.
// Returns true if an error was handled, false otherwise.
func HandleError(c *gin.Context, err error) bool {
	return HandleErrorWithProgress(c, err, nil)
}

// HandleErrorWithProgress is HandleError with the request's progress trace
// attached to the body. A nil trace is rendered as an empty list.
func HandleErrorWithProgress(c *gin.Context, err error, progress []string) bool {
	if err == nil {
		return false
	}

	resp, status := errorBody(err)
	if progress != nil {
		resp.Progress = progress
	}
	_ = c.Error(err)
	c.JSON(status, resp)
	return true
}

func errorBody(err error) (ErrorResponse, int) {
	if domainErr, ok := apperr.As(err); ok {
		return ErrorResponse{
			Error:       domainErr.Message,
			Details:     domainErr.Details,
			RawResponse: domainErr.Raw,
		}, domainErr.HTTPStatus()
	}

	return ErrorResponse{Error: "internal server error"}, http.StatusInternalServerError
}
