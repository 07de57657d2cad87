package rest

import (
	"encoding/json"
	"time"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

// Transaction is the outward read-model of a ledger record. Amounts are
// rendered as fixed two-decimal strings.
type Transaction struct {
	ID              int64           `json:"id"`
	MemberID        *int64          `json:"member_id,omitempty"`
	PostID          *int64          `json:"post_id,omitempty"`
	TransactionType string          `json:"transaction_type"`
	CheckoutKey     *string         `json:"checkout_key,omitempty"`
	PaymentID       string          `json:"payment_id"`
	Gateway         string          `json:"gateway"`
	PaymentMethod   string          `json:"payment_method"`
	Amount          string          `json:"amount"`
	Currency        string          `json:"currency"`
	LineItems       json.RawMessage `json:"line_items,omitempty"`
	Description     string          `json:"description"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type TransactionData struct {
	Success bool        `json:"success"`
	Data    Transaction `json:"data"`
}

type TransactionListData struct {
	Success bool          `json:"success"`
	Data    []Transaction `json:"data"`
}

func ToAPITransaction(t *domain.TransactionRecord) Transaction {
	return Transaction{
		ID:              t.ID,
		MemberID:        t.MemberID,
		PostID:          t.PostID,
		TransactionType: t.TransactionType,
		CheckoutKey:     t.CheckoutKey,
		PaymentID:       t.PaymentID,
		Gateway:         string(t.Gateway),
		PaymentMethod:   t.PaymentMethod,
		Amount:          t.Amount.StringFixed(2),
		Currency:        t.Currency,
		LineItems:       json.RawMessage(t.LineItems),
		Description:     t.Description,
		Status:          string(t.Status),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
