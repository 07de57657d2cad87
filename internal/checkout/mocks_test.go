package checkout

import (
	"context"
	"sync"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
	"github.com/Zxen1/Events-Platform-sub005/internal/gateway"
)

// mockGatewayClient
type mockGatewayClient struct {
	name domain.Gateway

	mu    sync.Mutex
	calls int

	VerifyOrCaptureFn      func(ctx context.Context, paymentID string) (*gateway.Confirmation, error)
	ExtractPaymentMethodFn func(c *gateway.Confirmation) string
}

func newMockGatewayClient(name domain.Gateway) *mockGatewayClient {
	return &mockGatewayClient{name: name}
}

func (m *mockGatewayClient) Name() domain.Gateway {
	return m.name
}

func (m *mockGatewayClient) VerifyOrCapture(ctx context.Context, paymentID string) (*gateway.Confirmation, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.VerifyOrCaptureFn != nil {
		return m.VerifyOrCaptureFn(ctx, paymentID)
	}
	return &gateway.Confirmation{PaymentID: paymentID, Status: "succeeded", Paid: true}, nil
}

func (m *mockGatewayClient) ExtractPaymentMethod(c *gateway.Confirmation) string {
	if m.ExtractPaymentMethodFn != nil {
		return m.ExtractPaymentMethodFn(c)
	}
	return "visa •••• 4242"
}

func (m *mockGatewayClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockLedger
type mockLedger struct {
	mu      sync.Mutex
	records map[string]*domain.TransactionRecord
	nextID  int64

	CommitFn                 func(ctx context.Context, draft *domain.TransactionDraft) (*domain.TransactionRecord, error)
	FindByGatewayPaymentIDFn func(ctx context.Context, gw domain.Gateway, paymentID string) (*domain.TransactionRecord, error)
}

func newMockLedger() *mockLedger {
	return &mockLedger{records: make(map[string]*domain.TransactionRecord)}
}

func (m *mockLedger) key(gw domain.Gateway, paymentID string) string {
	return string(gw) + "/" + paymentID
}

func (m *mockLedger) Commit(ctx context.Context, draft *domain.TransactionDraft) (*domain.TransactionRecord, error) {
	if m.CommitFn != nil {
		return m.CommitFn(ctx, draft)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := m.key(draft.Gateway, draft.PaymentID)
	if _, exists := m.records[k]; exists {
		return nil, domain.NewDuplicatePaymentError(draft.Gateway, draft.PaymentID)
	}

	m.nextID++
	record := &domain.TransactionRecord{
		ID:              m.nextID,
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
	}
	m.records[k] = record
	return record, nil
}

func (m *mockLedger) FindByGatewayPaymentID(ctx context.Context, gw domain.Gateway, paymentID string) (*domain.TransactionRecord, error) {
	if m.FindByGatewayPaymentIDFn != nil {
		return m.FindByGatewayPaymentIDFn(ctx, gw, paymentID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if record, ok := m.records[m.key(gw, paymentID)]; ok {
		return record, nil
	}
	return nil, domain.NewTransactionNotFoundError(0)
}

func (m *mockLedger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
