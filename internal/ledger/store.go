package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

const transactionColumns = `
	id, member_id, post_id, transaction_type, checkout_key,
	payment_id, gateway, payment_method, amount::text, currency,
	line_items, description, status, created_at, updated_at`

type Store struct {
	db *DB
}

func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Commit inserts the draft as a paid record, assigning identity and both
// timestamps server-side in one atomic statement. A violation of the
// (gateway, payment_id) unique index reports DuplicatePayment so callers can
// treat a retried capture as already settled; two concurrent commits for the
// same payment resolve deterministically at the index, never by check-then-act.
func (s *Store) Commit(ctx context.Context, draft *domain.TransactionDraft) (*domain.TransactionRecord, error) {
	query := `
		INSERT INTO transactions (
			member_id, post_id, transaction_type, checkout_key,
			payment_id, gateway, payment_method, amount, currency,
			line_items, description, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		RETURNING id, created_at, updated_at
	`

	var (
		id                   int64
		createdAt, updatedAt time.Time
	)
	err := s.db.Pool.QueryRow(ctx, query,
		draft.MemberID,
		draft.PostID,
		draft.TransactionType,
		draft.CheckoutKey,
		draft.PaymentID,
		string(draft.Gateway),
		draft.PaymentMethod,
		draft.Amount.StringFixed(2),
		draft.Currency,
		draft.LineItems,
		draft.Description,
		string(domain.StatusPaid),
	).Scan(&id, &createdAt, &updatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			return nil, domain.NewDuplicatePaymentError(draft.Gateway, draft.PaymentID)
		}
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &domain.TransactionRecord{
		ID:              id,
		MemberID:        draft.MemberID,
		PostID:          draft.PostID,
		TransactionType: draft.TransactionType,
		CheckoutKey:     draft.CheckoutKey,
		PaymentID:       draft.PaymentID,
		Gateway:         draft.Gateway,
		PaymentMethod:   draft.PaymentMethod,
		Amount:          draft.Amount,
		Currency:        draft.Currency,
		LineItems:       draft.LineItems,
		Description:     draft.Description,
		Status:          domain.StatusPaid,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}, nil
}

// FindByID retrieves a transaction
func (s *Store) FindByID(ctx context.Context, id int64) (*domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	record, err := scanTransaction(s.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewTransactionNotFoundError(id)
		}
		return nil, err
	}
	return record, nil
}

// FindByGatewayPaymentID retrieves the settled transaction for an external
// payment identifier, used to resolve duplicate captures to the original row.
func (s *Store) FindByGatewayPaymentID(ctx context.Context, gateway domain.Gateway, paymentID string) (*domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE gateway = $1 AND payment_id = $2`

	record, err := scanTransaction(s.db.Pool.QueryRow(ctx, query, string(gateway), paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no transaction for %s payment %s: %w", gateway, paymentID, err)
		}
		return nil, err
	}
	return record, nil
}

// FindByMemberID lists a member's transactions, newest first.
func (s *Store) FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*domain.TransactionRecord, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions WHERE member_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.db.Pool.Query(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query transactions by member_id: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.TransactionRecord, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan member transactions: %w", err)
	}
	return results, nil
}

// GatewaySettlement is one gateway's committed volume over a window.
type GatewaySettlement struct {
	Gateway domain.Gateway
	Count   int64
	Total   decimal.Decimal
}

// TotalsSince aggregates committed records per gateway from the given time,
// feeding the operator reconciliation sweep.
func (s *Store) TotalsSince(ctx context.Context, since time.Time) ([]GatewaySettlement, error) {
	query := `
		SELECT gateway, count(*), coalesce(sum(amount), 0)::text
		FROM transactions
		WHERE created_at >= $1
		GROUP BY gateway
		ORDER BY gateway
	`

	rows, err := s.db.Pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query settlement totals: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (GatewaySettlement, error) {
		var (
			gw    string
			count int64
			total string
		)
		if err := row.Scan(&gw, &count, &total); err != nil {
			return GatewaySettlement{}, err
		}
		sum, err := decimal.NewFromString(total)
		if err != nil {
			return GatewaySettlement{}, fmt.Errorf("parse settlement total %q: %w", total, err)
		}
		return GatewaySettlement{Gateway: domain.Gateway(gw), Count: count, Total: sum}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan settlement totals: %w", err)
	}
	return results, nil
}

func scanTransaction(row pgx.Row) (*domain.TransactionRecord, error) {
	var m TransactionModel
	err := row.Scan(
		&m.ID, &m.MemberID, &m.PostID, &m.TransactionType, &m.CheckoutKey,
		&m.PaymentID, &m.Gateway, &m.PaymentMethod, &m.Amount, &m.Currency,
		&m.LineItems, &m.Description, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return toDomainModel(m)
}
