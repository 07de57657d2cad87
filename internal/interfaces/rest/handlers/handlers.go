package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Zxen1/Events-Platform-sub005/internal/checkout"
	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
)

type CaptureService interface {
	Capture(ctx context.Context, req checkout.CaptureRequest) (*checkout.CaptureResult, error)
}

type QueryService interface {
	GetTransaction(ctx context.Context, id int64) (*domain.TransactionRecord, error)
	ListMemberTransactions(ctx context.Context, memberID int64, limit, offset int) ([]*domain.TransactionRecord, error)
}

type CheckoutHandler struct {
	captureService CaptureService
	queryService   QueryService
	logger         *slog.Logger
}

func NewCheckoutHandler(
	captureService CaptureService,
	queryService QueryService,
	logger *slog.Logger,
) *CheckoutHandler {
	return &CheckoutHandler{
		captureService: captureService,
		queryService:   queryService,
		logger:         logger,
	}
}

func (h *CheckoutHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /checkout/{action}", h.HandleCheckout)
	mux.HandleFunc("GET /transactions/{id}", h.HandleGetTransaction)
	mux.HandleFunc("GET /members/{id}/transactions", h.HandleListMemberTransactions)
}
