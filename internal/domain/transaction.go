// Package domain encodes the ledger transaction entity and its attributes
package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway identifies the external payment provider a payment settled through.
type Gateway string

const (
	GatewayStripe Gateway = "stripe"
	GatewayPayPal Gateway = "paypal"
)

// Valid reports whether the gateway is one this system knows how to verify.
func (g Gateway) Valid() bool {
	switch g {
	case GatewayStripe, GatewayPayPal:
		return true
	default:
		return false
	}
}

// TransactionStatus represents the lifecycle state of a ledger record.
// The capture path only ever writes StatusPaid; other statuses belong
// to flows outside this service.
type TransactionStatus string

const (
	StatusPaid TransactionStatus = "paid"
)

const (
	DefaultCurrency        = "USD"
	DefaultDescription     = "Payment"
	DefaultTransactionType = "new_post"
)

// TransactionDraft is the fully assembled record handed to the ledger store
// after a gateway has confirmed the payment. It carries no identity or
// timestamps; those are assigned at insert time.
type TransactionDraft struct {
	MemberID        *int64
	PostID          *int64
	TransactionType string
	CheckoutKey     *string
	PaymentID       string
	Gateway         Gateway
	PaymentMethod   string
	Amount          decimal.Decimal
	Currency        string
	LineItems       []byte
	Description     string
}

// NewTransactionDraft builds a draft with defaults applied and the amount
// rounded to two fraction digits.
func NewTransactionDraft(gateway Gateway, paymentID string, amount decimal.Decimal) (*TransactionDraft, error) {
	if paymentID == "" {
		return nil, NewMissingParametersError("order_id")
	}
	if !gateway.Valid() {
		return nil, NewUnknownGatewayError(string(gateway))
	}

	return &TransactionDraft{
		TransactionType: DefaultTransactionType,
		PaymentID:       paymentID,
		Gateway:         gateway,
		Amount:          amount.Round(2),
		Currency:        DefaultCurrency,
		Description:     DefaultDescription,
	}, nil
}

// SetCurrency normalizes the currency code to upper case, keeping the
// default when the code is empty.
func (d *TransactionDraft) SetCurrency(code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code != "" {
		d.Currency = code
	}
}

// TransactionRecord is the durable, append-only row representing one
// completed payment. It is only ever created after an external confirmation
// of success and is never updated by this service.
type TransactionRecord struct {
	ID              int64
	MemberID        *int64
	PostID          *int64
	TransactionType string
	CheckoutKey     *string
	PaymentID       string
	Gateway         Gateway
	PaymentMethod   string
	Amount          decimal.Decimal
	Currency        string
	LineItems       []byte
	Description     string
	Status          TransactionStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
