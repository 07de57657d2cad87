package checkout

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

// CaptureRequest is the inbound boundary contract, decoded straight from the
// calling layer's JSON payload.
type CaptureRequest struct {
	OrderID         string          `json:"order_id"`
	Gateway         string          `json:"gateway"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	MemberID        *int64          `json:"member_id"`
	PostID          *int64          `json:"post_id"`
	TransactionType string          `json:"transaction_type"`
	CheckoutKey     *string         `json:"checkout_key"`
	LineItems       json.RawMessage `json:"line_items"`
}

// CaptureCommand is the fully-typed request with defaults applied. Gateway
// stays a plain string here; rejecting an unknown selector is the
// orchestrator's first step, before any client dispatch.
type CaptureCommand struct {
	OrderID         string
	Gateway         string
	Amount          decimal.Decimal
	Currency        string
	Description     string
	MemberID        *int64
	PostID          *int64
	TransactionType string
	CheckoutKey     *string
	LineItems       []byte
}

// Normalize validates the request shape and applies defaults. It performs no
// external I/O; a missing order_id or gateway is rejected before any
// provider is consulted.
func (r CaptureRequest) Normalize() (CaptureCommand, error) {
	if r.OrderID == "" {
		return CaptureCommand{}, domain.NewMissingParametersError("order_id")
	}
	if r.Gateway == "" {
		return CaptureCommand{}, domain.NewMissingParametersError("gateway")
	}

	cmd := CaptureCommand{
		OrderID:         r.OrderID,
		Gateway:         r.Gateway,
		Amount:          decimal.NewFromFloat(r.Amount).Round(2),
		Currency:        r.Currency,
		Description:     r.Description,
		MemberID:        r.MemberID,
		PostID:          r.PostID,
		TransactionType: r.TransactionType,
		CheckoutKey:     r.CheckoutKey,
	}

	if cmd.Description == "" {
		cmd.Description = domain.DefaultDescription
	}
	if cmd.TransactionType == "" {
		cmd.TransactionType = domain.DefaultTransactionType
	}
	if len(r.LineItems) > 0 && string(r.LineItems) != "null" {
		cmd.LineItems = []byte(r.LineItems)
	}

	return cmd, nil
}
