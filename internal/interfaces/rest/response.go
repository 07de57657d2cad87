package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

// CaptureResponse is the uniform success contract: the new (or, for a
// duplicate submission, the original) ledger identity.
type CaptureResponse struct {
	Success       bool  `json:"success"`
	TransactionID int64 `json:"transaction_id"`
	Duplicate     bool  `json:"duplicate,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError maps domain errors to the outward failure contract: 400 for
// validation, unknown-gateway and business non-payment; 502 for gateway
// communication; 500 for storage. No provider payload leaks past here.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status := http.StatusInternalServerError
	message := "internal error"

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message

		switch domainErr.Code {
		case domain.ErrCodeMissingParameters,
			domain.ErrCodeUnknownGateway,
			domain.ErrCodeUnknownAction,
			domain.ErrCodePaymentNotCompleted:
			status = http.StatusBadRequest
		case domain.ErrCodeGatewayUnavailable:
			status = http.StatusBadGateway
		case domain.ErrCodeDuplicatePayment:
			// Only reaches here when the original row could not be read back.
			status = http.StatusConflict
		case domain.ErrCodeTransactionNotFound:
			status = http.StatusNotFound
		case domain.ErrCodeStorageFailure:
			status = http.StatusInternalServerError
		default:
			status = http.StatusBadRequest
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	}

	WriteJSON(w, status, ErrorResponse{Success: false, Message: message})
}
