package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/home-solutions/pkg/errors"
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

// Unwrap exposes the domain error.
func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps AppError codes onto HTTP statuses.
func fromDomainError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		status, code = http.StatusBadRequest, apperrors.CodeInvalidInput
	case apperrors.IsCode(err, apperrors.CodeNotFound):
		status, code = http.StatusNotFound, apperrors.CodeNotFound
	case apperrors.IsCode(err, apperrors.CodeBackend):
		status, code = http.StatusBadGateway, apperrors.CodeBackend
	default:
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			return NewHTTPError(status, code, "something went wrong", err)
		}
		if appErr.Code != "" {
			code = appErr.Code
		}
	}
	return NewHTTPError(status, code, apperrors.PublicMessage(err), err)
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
