package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

type mockReader struct {
	FindByIDFn       func(ctx context.Context, id int64) (*domain.TransactionRecord, error)
	FindByMemberIDFn func(ctx context.Context, memberID int64, limit, offset int) ([]*domain.TransactionRecord, error)
}

func (m *mockReader) FindByID(ctx context.Context, id int64) (*domain.TransactionRecord, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockReader) FindByMemberID(ctx context.Context, memberID int64, limit, offset int) ([]*domain.TransactionRecord, error) {
	return m.FindByMemberIDFn(ctx, memberID, limit, offset)
}

func TestGetTransaction(t *testing.T) {
	reader := &mockReader{
		FindByIDFn: func(ctx context.Context, id int64) (*domain.TransactionRecord, error) {
			return &domain.TransactionRecord{ID: id, Gateway: domain.GatewayStripe}, nil
		},
	}
	svc := NewQueryService(reader)

	record, err := svc.GetTransaction(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), record.ID)
}

func TestListMemberTransactions_ClampsPaging(t *testing.T) {
	var gotLimit, gotOffset int
	reader := &mockReader{
		FindByMemberIDFn: func(ctx context.Context, memberID int64, limit, offset int) ([]*domain.TransactionRecord, error) {
			gotLimit, gotOffset = limit, offset
			return nil, nil
		},
	}
	svc := NewQueryService(reader)

	_, err := svc.ListMemberTransactions(context.Background(), 7, 0, -3)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 0, gotOffset)

	_, err = svc.ListMemberTransactions(context.Background(), 7, 500, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, gotLimit)
	assert.Equal(t, 10, gotOffset)
}
