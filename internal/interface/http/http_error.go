package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/agrivision/agrivision/pkg/errors"
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

// domainError maps the domain error taxonomy onto HTTP statuses. Unknown
// codes stay 500 so bugs do not masquerade as client mistakes.
func domainError(err error) *HTTPError {
	msg := errMessage(err)
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		return NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, msg, err)
	case apperrors.IsCode(err, apperrors.CodeSessionNotFound):
		return NewHTTPError(http.StatusNotFound, apperrors.CodeSessionNotFound, msg, err)
	case apperrors.IsCode(err, apperrors.CodeWeatherUnavailable):
		return NewHTTPError(http.StatusBadGateway, apperrors.CodeWeatherUnavailable, msg, err)
	case apperrors.IsCode(err, apperrors.CodeLLMError):
		return NewHTTPError(http.StatusBadGateway, apperrors.CodeLLMError, msg, err)
	case apperrors.IsCode(err, apperrors.CodeAnalysisFailed):
		return NewHTTPError(http.StatusBadGateway, apperrors.CodeAnalysisFailed, msg, err)
	case apperrors.IsCode(err, apperrors.CodeReportFailed):
		return NewHTTPError(http.StatusBadGateway, apperrors.CodeReportFailed, msg, err)
	case apperrors.IsCode(err, apperrors.CodeRegionFailed):
		return NewHTTPError(http.StatusBadGateway, apperrors.CodeRegionFailed, msg, err)
	case apperrors.IsCode(err, apperrors.CodeLocationDenied):
		return NewHTTPError(http.StatusBadRequest, apperrors.CodeLocationDenied, msg, err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal_error", msg, err)
	}
}
