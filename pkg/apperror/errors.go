package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies business-rule violations independently of their HTTP mapping
type Kind string

const (
	KindInvalidAmount     Kind = "invalid_amount"
	KindEmptyDocument     Kind = "empty_document"
	KindDocumentLocked    Kind = "document_locked"
	KindInvalidTransition Kind = "invalid_transition"
	KindAlreadyConverted  Kind = "already_converted"
	KindAlreadyInvoiced   Kind = "already_invoiced"
	KindMissingProduct    Kind = "missing_product"
	KindMissingWeight     Kind = "missing_weight"
	KindNotFound          Kind = "not_found"

	KindValidation   Kind = "validation"
	KindBadRequest   Kind = "bad_request"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches any AppError of the same kind, so errors.Is works against the sentinels below
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Common errors
var (
	ErrNotFound          = &AppError{Code: http.StatusNotFound, Kind: KindNotFound, Message: "Resource not found"}
	ErrUnauthorized      = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Unauthorized"}
	ErrForbidden         = &AppError{Code: http.StatusForbidden, Kind: KindForbidden, Message: "Forbidden"}
	ErrBadRequest        = &AppError{Code: http.StatusBadRequest, Kind: KindBadRequest, Message: "Bad request"}
	ErrInternalServer    = &AppError{Code: http.StatusInternalServerError, Kind: KindInternal, Message: "Internal server error"}
	ErrConflict          = &AppError{Code: http.StatusConflict, Kind: KindConflict, Message: "Resource already exists"}
	ErrInvalidToken      = &AppError{Code: http.StatusUnauthorized, Kind: KindUnauthorized, Message: "Invalid token"}
	ErrEmptyDocument     = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindEmptyDocument, Message: "Document has no line with a nonzero total"}
	ErrDocumentLocked    = &AppError{Code: http.StatusConflict, Kind: KindDocumentLocked, Message: "Document is locked"}
	ErrAlreadyConverted  = &AppError{Code: http.StatusConflict, Kind: KindAlreadyConverted, Message: "Quote has already been converted to an invoice"}
	ErrAlreadyInvoiced   = &AppError{Code: http.StatusConflict, Kind: KindAlreadyInvoiced, Message: "Tracking has already been invoiced"}
	ErrMissingProduct    = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindMissingProduct, Message: "Tracking has no product"}
	ErrMissingWeight     = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindMissingWeight, Message: "Tracking has no weight"}
	ErrInvalidTransition = &AppError{Code: http.StatusConflict, Kind: KindInvalidTransition, Message: "Transition not allowed"}
	ErrInvalidAmount     = &AppError{Code: http.StatusUnprocessableEntity, Kind: KindInvalidAmount, Message: "Invalid amount"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForCode(code),
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewInvalidAmountError reports a negative quantity/price or an out-of-range tax rate
func NewInvalidAmountError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindInvalidAmount,
		Message: message,
	}
}

// NewInvalidTransitionError reports a status change the document's state machine forbids
func NewInvalidTransitionError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInvalidTransition,
		Message: message,
	}
}

// NewDocumentLockedError reports a mutation attempted on a validated or frozen document
func NewDocumentLockedError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindDocumentLocked,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}

func kindForCode(code int) Kind {
	switch code {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusBadRequest:
		return KindBadRequest
	default:
		return KindInternal
	}
}
