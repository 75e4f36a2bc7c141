package api

import (
	"errors"
	"net/http"

	"github.com/ledgerkit/money"
	"github.com/ledgerkit/money/internal/checkout"
	"github.com/ledgerkit/money/internal/registry"
)

// ErrorCode represents unified API error codes
type ErrorCode string

const (
	ErrorCodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	ErrorCodeUnknownLocale    ErrorCode = "UNKNOWN_LOCALE"
	ErrorCodeInexactDivision  ErrorCode = "INEXACT_DIVISION"
	ErrorCodeAmountOverflow   ErrorCode = "AMOUNT_OVERFLOW"
	ErrorCodeRateLimited      ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeInternalError    ErrorCode = "INTERNAL_ERROR"
	ErrorCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrorCodeNotFound         ErrorCode = "NOT_FOUND"
)

// MapErrorToHTTP maps errors to HTTP status codes and error responses
func MapErrorToHTTP(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusOK, ErrorResponse{}
	}

	var inexact money.InexactDivisionError
	if errors.As(err, &inexact) {
		return http.StatusUnprocessableEntity, ErrorResponse{
			Code:    string(ErrorCodeInexactDivision),
			Message: err.Error(),
		}
	}

	if errors.Is(err, money.ErrAmountOverflow) {
		return http.StatusUnprocessableEntity, ErrorResponse{
			Code:    string(ErrorCodeAmountOverflow),
			Message: err.Error(),
		}
	}

	if errors.Is(err, registry.ErrUnknownLocale) {
		return http.StatusBadRequest, ErrorResponse{
			Code:    string(ErrorCodeUnknownLocale),
			Message: err.Error(),
		}
	}

	if errors.Is(err, money.ErrInvalidMoney) ||
		errors.Is(err, money.ErrInvalidLiteral) ||
		errors.Is(err, money.ErrInvalidFormat) ||
		errors.Is(err, checkout.ErrInvalidRequest) ||
		errors.Is(err, errBadRequest) {
		return http.StatusBadRequest, ErrorResponse{
			Code:    string(ErrorCodeInvalidArgument),
			Message: err.Error(),
		}
	}

	// Internal details stay in the log
	return http.StatusInternalServerError, ErrorResponse{
		Code:    string(ErrorCodeInternalError),
		Message: "internal error",
	}
}
