package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Zxen1/Events-Platform-sub005/internal/checkout"
	"github.com/Zxen1/Events-Platform-sub005/internal/domain"
	"github.com/Zxen1/Events-Platform-sub005/internal/interfaces/rest"
)

// HandleCheckout is the action-routing front door. The only sub-action this
// service owns is "capture"; anything else is rejected before a body is read.
func (h *CheckoutHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")
	if action != "capture" {
		rest.WriteError(w, domain.NewUnknownActionError(action), h.logger)
		return
	}

	var req checkout.CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, domain.NewMissingParametersError("request body"), h.logger)
		return
	}

	result, err := h.captureService.Capture(r.Context(), req)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.CaptureResponse{
		Success:       true,
		TransactionID: result.Transaction.ID,
		Duplicate:     result.Duplicate,
	})
}
