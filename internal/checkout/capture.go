// Package checkout drives a client-reported payment completion to a
// verified-success or failure outcome and hands confirmed payments to the
// ledger exactly once.
package checkout

import (
	"context"
	"log/slog"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
	"github.com/Zxen1/Events-Platform-sub005/internal/gateway"
)

// LedgerStore is the slice of the ledger this service writes through.
type LedgerStore interface {
	Commit(ctx context.Context, draft *domain.TransactionDraft) (*domain.TransactionRecord, error)
	FindByGatewayPaymentID(ctx context.Context, gw domain.Gateway, paymentID string) (*domain.TransactionRecord, error)
}

// CaptureResult is the successful terminal outcome. Duplicate marks a retried
// capture that resolved to the previously committed record instead of a new row.
type CaptureResult struct {
	Transaction *domain.TransactionRecord
	Duplicate   bool
}

type CaptureService struct {
	clients map[domain.Gateway]gateway.Client
	ledger  LedgerStore
	logger  *slog.Logger
}

func NewCaptureService(ledger LedgerStore, logger *slog.Logger, clients ...gateway.Client) *CaptureService {
	byGateway := make(map[domain.Gateway]gateway.Client, len(clients))
	for _, c := range clients {
		byGateway[c.Name()] = c
	}
	return &CaptureService{
		clients: byGateway,
		ledger:  ledger,
		logger:  logger,
	}
}

// Capture verifies the reported payment with its gateway and commits the
// transaction. Every failure path returns before anything is written; once
// the provider has confirmed success, a ledger failure is surfaced as a
// storage error and never triggers a second provider call in-process —
// for PayPal the funds have already moved.
func (s *CaptureService) Capture(ctx context.Context, req CaptureRequest) (*CaptureResult, error) {
	cmd, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	gw := domain.Gateway(cmd.Gateway)
	if !gw.Valid() {
		return nil, domain.NewUnknownGatewayError(cmd.Gateway)
	}
	client, ok := s.clients[gw]
	if !ok {
		return nil, domain.NewUnknownGatewayError(cmd.Gateway)
	}

	conf, err := client.VerifyOrCapture(ctx, cmd.OrderID)
	if err != nil {
		s.logger.Warn("gateway verification failed",
			"gateway", gw,
			"order_id", cmd.OrderID,
			"error", err,
		)
		return nil, domain.NewGatewayUnavailableError(gw, err)
	}

	if !conf.Paid {
		return nil, domain.NewPaymentNotCompletedError(gw, conf.Status)
	}

	draft, err := domain.NewTransactionDraft(gw, cmd.OrderID, cmd.Amount)
	if err != nil {
		return nil, err
	}
	draft.SetCurrency(cmd.Currency)
	draft.MemberID = cmd.MemberID
	draft.PostID = cmd.PostID
	draft.TransactionType = cmd.TransactionType
	draft.CheckoutKey = cmd.CheckoutKey
	draft.Description = cmd.Description
	draft.LineItems = cmd.LineItems
	draft.PaymentMethod = client.ExtractPaymentMethod(conf)

	record, err := s.ledger.Commit(ctx, draft)
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeDuplicatePayment) {
			return s.resolveDuplicate(ctx, gw, cmd.OrderID, err)
		}

		// Funds are confirmed on the provider side but the ledger row is
		// missing. This is the one failure operators must reconcile
		// out-of-band, so it gets its own signal.
		s.logger.Error("ledger commit failed after confirmed payment",
			"gateway", gw,
			"order_id", cmd.OrderID,
			"amount", draft.Amount.StringFixed(2),
			"currency", draft.Currency,
			"error", err,
		)
		return nil, domain.NewStorageFailureError(err)
	}

	s.logger.Info("payment captured",
		"gateway", gw,
		"order_id", cmd.OrderID,
		"transaction_id", record.ID,
		"amount", record.Amount.StringFixed(2),
		"currency", record.Currency,
	)

	return &CaptureResult{Transaction: record}, nil
}

// resolveDuplicate turns a unique-index violation into an idempotent outcome
// referencing the originally committed record.
func (s *CaptureService) resolveDuplicate(ctx context.Context, gw domain.Gateway, orderID string, commitErr error) (*CaptureResult, error) {
	existing, err := s.ledger.FindByGatewayPaymentID(ctx, gw, orderID)
	if err != nil {
		s.logger.Error("duplicate capture could not resolve original transaction",
			"gateway", gw,
			"order_id", orderID,
			"error", err,
		)
		return nil, commitErr
	}

	s.logger.Info("duplicate capture resolved to existing transaction",
		"gateway", gw,
		"order_id", orderID,
		"transaction_id", existing.ID,
	)

	return &CaptureResult{Transaction: existing, Duplicate: true}, nil
}
