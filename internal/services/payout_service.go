package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/rentbooks/backend/internal/models"
	"github.com/rentbooks/backend/internal/money"
)

// PayoutService computes what a landlord is owed for a period: the sum of
// completed collections across the landlord's units minus payouts already
// made in that period. A derived read only; payouts have no reversal
// semantics.
type PayoutService struct {
	db        *sql.DB
	validator *ValidationHelper
}

func NewPayoutService(db *sql.DB) *PayoutService {
	return &PayoutService{
		db:        db,
		validator: NewValidationHelper(),
	}
}

// ComputePayout returns the outstanding payout for a landlord and period
// @Summary Compute landlord payout
// @Description Sum of completed rent collections for the landlord's properties in a period, minus payouts already made
// @Tags landlords
// @Produce json
// @Param landlordId path string true "Landlord ID"
// @Param period query string true "Period, e.g. 2026-08"
// @Success 200 {object} object{landlordId=string,period=string,collected=float64,alreadyPaid=float64,due=float64}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /landlords/{landlordId}/payout [get]
func (s *PayoutService) ComputePayout(w http.ResponseWriter, r *http.Request) {
	landlordID := chi.URLParam(r, "landlordId")

	var req struct {
		Period string `validate:"required,payment_period"`
	}
	req.Period = r.URL.Query().Get("period")

	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	collected, alreadyPaid, err := s.computePayout(landlordID, req.Period)
	if err != nil {
		log.Printf("[PAYOUT] Computation failed for landlord %s period %s: %v", landlordID, req.Period, err)
		SendErrorResponse(w, "Failed to compute payout", http.StatusInternalServerError, nil)
		return
	}

	due := collected.Sub(alreadyPaid)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"landlordId":  landlordID,
		"period":      req.Period,
		"collected":   collected.Float64(),
		"alreadyPaid": alreadyPaid.Float64(),
		"due":         due.Float64(),
	})
}

func (s *PayoutService) computePayout(landlordID, period string) (collected, alreadyPaid money.Amount, err error) {
	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(p.amount), 0)
		FROM payments p
		JOIN tenants t ON t.id = p.tenant_id
		JOIN units u ON u.id = t.unit_id
		JOIN properties pr ON pr.id = u.property_id
		WHERE pr.landlord_id = $1 AND p.payment_period = $2 AND p.status = $3`,
		landlordID, period, models.PaymentCompleted).Scan(&collected)
	if err != nil {
		return money.Zero, money.Zero, fmt.Errorf("sum collections: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT COALESCE(SUM(amount), 0) FROM landlord_payments
		WHERE landlord_id = $1 AND period = $2`,
		landlordID, period).Scan(&alreadyPaid)
	if err != nil {
		return money.Zero, money.Zero, fmt.Errorf("sum payouts: %w", err)
	}

	return collected, alreadyPaid, nil
}

// RecordPayout stores a payout made to a landlord
// @Summary Record landlord payout
// @Tags landlords
// @Accept json
// @Produce json
// @Param landlordId path string true "Landlord ID"
// @Param payout body object{amount=float64,period=string} true "Payout data"
// @Success 201 {object} object{success=bool,payout=models.LandlordPayment}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /landlords/{landlordId}/payouts [post]
func (s *PayoutService) RecordPayout(w http.ResponseWriter, r *http.Request) {
	landlordID := chi.URLParam(r, "landlordId")

	var req struct {
		Amount float64 `json:"amount" validate:"required,gt=0"`
		Period string  `json:"period" validate:"required,payment_period"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	payout := models.LandlordPayment{
		ID:         uuid.NewString(),
		LandlordID: landlordID,
		Amount:     money.FromFloat(req.Amount),
		Period:     req.Period,
		PaidAt:     time.Now(),
	}

	if _, err := s.db.Exec(`
		INSERT INTO landlord_payments (id, landlord_id, amount, period, paid_at)
		VALUES ($1, $2, $3, $4, $5)`,
		payout.ID, payout.LandlordID, payout.Amount, payout.Period, payout.PaidAt); err != nil {
		log.Printf("[PAYOUT] Insert failed for landlord %s: %v", landlordID, err)
		SendErrorResponse(w, "Failed to record payout", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"payout":  payout,
	})
}
