package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/luwei/smart-travel/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError translates an application error into the transport shape.
// Unknown codes collapse to a 500 so internals never leak to the client.
func fromDomainError(err error) *HTTPError {
	code := apperrors.Code(err)
	status := http.StatusInternalServerError
	switch code {
	case "invalid_input":
		status = http.StatusBadRequest
	case "not_found":
		status = http.StatusNotFound
	case "weather_api_error", "map_api_error":
		status = http.StatusBadGateway
	case "storage_error":
		status = http.StatusInternalServerError
	case "":
		code = "internal_error"
	}
	return &HTTPError{Status: status, Code: code, Message: errMessage(err), Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
