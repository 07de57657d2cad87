package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

// TransactionModel mirrors the transactions table row. Amount travels as
// text between here and postgres so numeric precision survives the round
// trip exactly.
type TransactionModel struct {
	ID              int64
	MemberID        *int64
	PostID          *int64
	TransactionType string
	CheckoutKey     *string
	PaymentID       string
	Gateway         string
	PaymentMethod   string
	Amount          string
	Currency        string
	LineItems       []byte
	Description     string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func toDomainModel(m TransactionModel) (*domain.TransactionRecord, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("parse stored amount %q: %w", m.Amount, err)
	}

	return &domain.TransactionRecord{
		ID:              m.ID,
		MemberID:        m.MemberID,
		PostID:          m.PostID,
		TransactionType: m.TransactionType,
		CheckoutKey:     m.CheckoutKey,
		PaymentID:       m.PaymentID,
		Gateway:         domain.Gateway(m.Gateway),
		PaymentMethod:   m.PaymentMethod,
		Amount:          amount,
		Currency:        m.Currency,
		LineItems:       m.LineItems,
		Description:     m.Description,
		Status:          domain.TransactionStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}
