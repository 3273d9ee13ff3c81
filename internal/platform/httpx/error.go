package httpx

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Code string

const (
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeNotFound         Code = "NOT_FOUND"
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeConflict         Code = "CONFLICT"
	CodeInternal         Code = "INTERNAL"
	// NoAccess is a permission failure that is deliberately reported as
	// NOT_FOUND, so callers can't probe whether the resource exists.
	CodeNoAccess Code = "NO_ACCESS"
)

type APIError struct {
	Code    Code
	Message string
}

func (e *APIError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Message) }

func ErrInvalid(msg string) *APIError    { return &APIError{Code: CodeInvalidArgument, Message: msg} }
func ErrNotFound(msg string) *APIError   { return &APIError{Code: CodeNotFound, Message: msg} }
func ErrPermission(msg string) *APIError { return &APIError{Code: CodePermissionDenied, Message: msg} }
func ErrConflict(msg string) *APIError   { return &APIError{Code: CodeConflict, Message: msg} }
func ErrInternal(msg string) *APIError   { return &APIError{Code: CodeInternal, Message: msg} }
func ErrNoAccess(msg string) *APIError   { return &APIError{Code: CodeNoAccess, Message: msg} }

func ToHTTPStatus(err error) int {
	var api *APIError
	if errors.As(err, &api) {
		switch api.Code {
		case CodeInvalidArgument:
			return http.StatusBadRequest
		case CodeNotFound, CodeNoAccess:
			return http.StatusNotFound
		case CodePermissionDenied:
			return http.StatusForbidden
		case CodeConflict:
			return http.StatusConflict
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

type errorDTO struct {
	Errors []string `json:"errors"`
}

// WriteError renders err as {"errors": [...]} with the mapped status.
func WriteError(c *gin.Context, err error) {
	var api *APIError
	msg := "internal server error"
	if errors.As(err, &api) {
		msg = api.Message
	}
	c.JSON(ToHTTPStatus(err), errorDTO{Errors: []string{msg}})
}
