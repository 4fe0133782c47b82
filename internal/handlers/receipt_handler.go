package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rentbooks/backend/internal/services"
)

type ReceiptHandler struct {
	service *services.ReceiptService
}

func NewReceiptHandler(service *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{service: service}
}

// GetReceipt returns the QR receipt for a payment
// @Summary Get payment receipt
// @Description Retrieve the QR-encoded receipt for a recorded payment
// @Tags receipts
// @Produce json
// @Security BearerAuth
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} services.Receipt
// @Failure 404 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /payments/{paymentId}/receipt [get]
func (h *ReceiptHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")

	receipt, err := h.service.GenerateReceipt(r.Context(), paymentID)
	if err != nil {
		if err == sql.ErrNoRows {
			services.SendErrorResponse(w, "Payment not found", http.StatusNotFound, nil)
			return
		}
		services.SendErrorResponse(w, "Failed to generate receipt", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"receipt": receipt,
	})
}
