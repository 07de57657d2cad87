package checkout

import (
	"context"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

// LedgerReader is the read side of the ledger consumed by queries.
type LedgerReader interface {
	FindByID(ctx context.Context, id int64) (*domain.TransactionRecord, error)
	FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*domain.TransactionRecord, error)
}

type QueryService struct {
	ledger LedgerReader
}

func NewQueryService(ledger LedgerReader) *QueryService {
	return &QueryService{ledger: ledger}
}

// GetTransaction retrieves a transaction by its ledger identity
func (s *QueryService) GetTransaction(ctx context.Context, id int64) (*domain.TransactionRecord, error) {
	return s.ledger.FindByID(ctx, id)
}

// ListMemberTransactions retrieves a member's transactions
func (s *QueryService) ListMemberTransactions(ctx context.Context, memberID int64, limit, offset int) ([]*domain.TransactionRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.ledger.FindByMemberID(ctx, memberID, limit, offset)
}
