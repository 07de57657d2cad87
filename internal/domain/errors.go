package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeMissingParameters   = "MISSING_PARAMETERS"
	ErrCodeUnknownGateway      = "UNKNOWN_GATEWAY"
	ErrCodeUnknownAction       = "UNKNOWN_ACTION"
	ErrCodeGatewayUnavailable  = "GATEWAY_UNAVAILABLE"
	ErrCodePaymentNotCompleted = "PAYMENT_NOT_COMPLETED"
	ErrCodeDuplicatePayment    = "DUPLICATE_PAYMENT"
	ErrCodeStorageFailure      = "STORAGE_FAILURE"
	ErrCodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
)

func NewMissingParametersError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingParameters,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewUnknownGatewayError(gateway string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnknownGateway,
		Message: fmt.Sprintf("unknown payment gateway %q", gateway),
	}
}

func NewUnknownActionError(action string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUnknownAction,
		Message: fmt.Sprintf("unknown checkout action %q", action),
	}
}

func NewGatewayUnavailableError(gateway Gateway, err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeGatewayUnavailable,
		Message: fmt.Sprintf("%s verification failed", gateway),
		Err:     err,
	}
}

// NewPaymentNotCompletedError carries the provider's literal status string so
// the caller can see exactly what the gateway reported.
func NewPaymentNotCompletedError(gateway Gateway, status string) *DomainError {
	return &DomainError{
		Code:    ErrCodePaymentNotCompleted,
		Message: fmt.Sprintf("%s reports payment status %q, not completed", gateway, status),
	}
}

func NewDuplicatePaymentError(gateway Gateway, paymentID string) *DomainError {
	return &DomainError{
		Code:    ErrCodeDuplicatePayment,
		Message: fmt.Sprintf("a transaction for %s payment %s already exists", gateway, paymentID),
	}
}

func NewStorageFailureError(err error) *DomainError {
	return &DomainError{
		Code:    ErrCodeStorageFailure,
		Message: "failed to record transaction",
		Err:     err,
	}
}

func NewTransactionNotFoundError(id int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeTransactionNotFound,
		Message: fmt.Sprintf("transaction %d not found", id),
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
