package handlers

import (
	"net/http"
	"strconv"

	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
	"github.com/Zxen1/Events-Platform-sub005/internal/interfaces/rest"
)

// HandleGetTransaction retrieves a single ledger record
func (h *CheckoutHandler) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		rest.WriteError(w, domain.NewMissingParametersError("transaction id"), h.logger)
		return
	}

	record, err := h.queryService.GetTransaction(r.Context(), id)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.TransactionData{
		Success: true,
		Data:    rest.ToAPITransaction(record),
	})
}

// HandleListMemberTransactions lists a member's ledger records
func (h *CheckoutHandler) HandleListMemberTransactions(w http.ResponseWriter, r *http.Request) {
	memberID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		rest.WriteError(w, domain.NewMissingParametersError("member id"), h.logger)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := h.queryService.ListMemberTransactions(r.Context(), memberID, limit, offset)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	data := make([]rest.Transaction, 0, len(records))
	for _, record := range records {
		data = append(data, rest.ToAPITransaction(record))
	}

	rest.WriteJSON(w, http.StatusOK, rest.TransactionListData{
		Success: true,
		Data:    data,
	})
}
