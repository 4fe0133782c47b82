package services

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"

	"github.com/rentbooks/backend/internal/config"
)

// TenantService serves the read side of the ledger: balance enquiries and
// payment history for a tenant.
type TenantService struct {
	db        *sql.DB
	redis     *redis.Client
	cfg       *config.LedgerConfig
	validator *ValidationHelper
}

func NewTenantService(db *sql.DB, redisClient *redis.Client) *TenantService {
	return &TenantService{
		db:        db,
		redis:     redisClient,
		cfg:       config.LoadLedgerConfig(),
		validator: NewValidationHelper(),
	}
}

// balanceSnapshot is the cached shape of a balance enquiry response.
type balanceSnapshot struct {
	TenantID        string  `json:"tenantId"`
	Balance         float64 `json:"balance"`
	PrepaidBalance  float64 `json:"prepaidBalance"`
	TotalPaid       float64 `json:"totalPaid"`
	MonthlyRent     float64 `json:"monthlyRent"`
	PaymentStatus   string  `json:"paymentStatus"`
	Currency        string  `json:"currency"`
	LastPaymentDate *string `json:"lastPaymentDate"`
}

func balanceCacheKey(tenantID string) string {
	return fmt.Sprintf("tenant:balance:%s", tenantID)
}

// BalanceEnquiry retrieves a tenant's balance triple
// @Summary Get tenant balance
// @Description Retrieve the tenant's owed balance, prepaid credit, lifetime total and payment status
// @Tags tenants
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Success 200 {object} object{responseCode=string,balance=object,source=string}
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tenants/{tenantId}/balance [get]
func (ts *TenantService) BalanceEnquiry(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")
	log.Printf("[TENANT_ENQUIRY] Balance enquiry for tenant: %s from IP: %s", tenantID, r.RemoteAddr)

	// Cache first
	if ts.redis != nil {
		if data, err := ts.redis.Get(r.Context(), balanceCacheKey(tenantID)).Bytes(); err == nil {
			var snap balanceSnapshot
			if json.Unmarshal(data, &snap) == nil {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(map[string]interface{}{
					"responseCode": "00",
					"balance":      snap,
					"source":       "cache",
				})
				return
			}
		}
	}

	snap, err := ts.fetchBalanceSnapshot(tenantID)
	if err != nil {
		if err == sql.ErrNoRows {
			SendErrorResponse(w, "Tenant not found", http.StatusNotFound, nil)
		} else {
			log.Printf("[TENANT_ENQUIRY] Lookup failed for tenant %s: %v", tenantID, err)
			SendErrorResponse(w, "Failed to fetch balance", http.StatusInternalServerError, nil)
		}
		return
	}

	if ts.redis != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := ts.redis.Set(r.Context(), balanceCacheKey(tenantID), data, ts.cfg.BalanceCacheTTL).Err(); err != nil {
				log.Printf("[TENANT_ENQUIRY] Failed to cache balance for tenant %s: %v", tenantID, err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"responseCode": "00",
		"balance":      snap,
		"source":       "db",
	})
}

func (ts *TenantService) fetchBalanceSnapshot(tenantID string) (*balanceSnapshot, error) {
	var snap balanceSnapshot
	var balance, prepaid, totalPaid, monthlyRent float64
	var lastPayment sql.NullTime

	err := ts.db.QueryRow(`
		SELECT id, balance, prepaid_balance, total_paid, monthly_rent, payment_status, currency, last_payment_date
		FROM tenants WHERE id = $1`, tenantID).
		Scan(&snap.TenantID, &balance, &prepaid, &totalPaid, &monthlyRent,
			&snap.PaymentStatus, &snap.Currency, &lastPayment)
	if err != nil {
		return nil, err
	}

	snap.Balance = balance
	snap.PrepaidBalance = prepaid
	snap.TotalPaid = totalPaid
	snap.MonthlyRent = monthlyRent
	if lastPayment.Valid {
		s := lastPayment.Time.Format("2006-01-02")
		snap.LastPaymentDate = &s
	}

	return &snap, nil
}

// TenantPayments retrieves a tenant's recent payments
// @Summary Get tenant payment history
// @Tags tenants
// @Produce json
// @Param tenantId path string true "Tenant ID"
// @Param limit query int false "Number of payments to return (default: 10, max: 100)"
// @Success 200 {object} object{payments=[]models.Payment,count=int}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tenants/{tenantId}/payments [get]
func (ts *TenantService) TenantPayments(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantId")

	var req struct {
		Limit int `validate:"omitempty,min=1,max=100"`
	}
	req.Limit = 10

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			req.Limit = l
		}
	}

	if err := ts.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	rows, err := ts.db.Query(`
		SELECT id, amount, overpayment_credit, payment_date, payment_period, payment_method, receipt_number, status
		FROM payments WHERE tenant_id = $1
		ORDER BY payment_date DESC, created_at DESC LIMIT $2`, tenantID, req.Limit)
	if err != nil {
		log.Printf("[TENANT_ENQUIRY] Payment history failed for tenant %s: %v", tenantID, err)
		SendErrorResponse(w, "Failed to fetch payments", http.StatusInternalServerError, nil)
		return
	}
	defer rows.Close()

	type paymentRow struct {
		ID                string    `json:"id"`
		Amount            float64   `json:"amount"`
		OverpaymentCredit float64   `json:"overpayment_credit"`
		PaymentDate       time.Time `json:"payment_date"`
		PaymentPeriod     string    `json:"payment_period"`
		PaymentMethod     string    `json:"payment_method"`
		ReceiptNumber     string    `json:"receipt_number"`
		Status            string    `json:"status"`
	}

	payments := []paymentRow{}
	for rows.Next() {
		var p paymentRow
		if err := rows.Scan(&p.ID, &p.Amount, &p.OverpaymentCredit, &p.PaymentDate,
			&p.PaymentPeriod, &p.PaymentMethod, &p.ReceiptNumber, &p.Status); err != nil {
			SendErrorResponse(w, "Failed to fetch payments", http.StatusInternalServerError, nil)
			return
		}
		payments = append(payments, p)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"payments": payments,
		"count":    len(payments),
	})
}
