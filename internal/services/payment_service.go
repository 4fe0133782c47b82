package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/rentbooks/backend/internal/config"
	"github.com/rentbooks/backend/internal/ledger"
	"github.com/rentbooks/backend/internal/models"
	"github.com/rentbooks/backend/internal/money"
)

var (
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrPaymentNotFound = errors.New("payment not found")

	// errVersionConflict signals that another writer updated the tenant
	// between our read and write; the whole attempt is retried.
	errVersionConflict = errors.New("tenant version conflict")
)

// PaymentService owns the three ledger operations: apply, amend and
// reverse. Each one is a read-compute-write against the tenant balance
// triple, wrapped in a single database transaction with the payment row
// write, and guarded by the tenant version column.
type PaymentService struct {
	db        *sql.DB
	redis     *redis.Client
	cfg       *config.LedgerConfig
	validator *ValidationHelper
}

func NewPaymentService(db *sql.DB, redisClient *redis.Client) *PaymentService {
	return &PaymentService{
		db:        db,
		redis:     redisClient,
		cfg:       config.LoadLedgerConfig(),
		validator: NewValidationHelper(),
	}
}

// ApplyPaymentRequest is the validated boundary for a new payment.
type ApplyPaymentRequest struct {
	TenantID      string  `json:"tenantId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate   string  `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=cash bank_transfer mobile_money cheque"`
	PaymentPeriod string  `json:"paymentPeriod" validate:"required,payment_period"`
}

// AmendPaymentRequest is the validated boundary for a payment correction.
type AmendPaymentRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentDate   string  `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=cash bank_transfer mobile_money cheque"`
}

// tenantLedgerRow is the subset of the tenant row the engine touches.
type tenantLedgerRow struct {
	Balance   money.Amount
	Prepaid   money.Amount
	TotalPaid money.Amount
	Currency  string
	Version   int
}

func (r tenantLedgerRow) triple() ledger.Balance {
	return ledger.Balance{Owed: r.Balance, Prepaid: r.Prepaid, TotalPaid: r.TotalPaid}
}

// ApplyPayment records a tenant payment
// @Summary Apply a rent payment
// @Description Record a cash payment for a tenant and update the running balance
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body ApplyPaymentRequest true "Payment data"
// @Success 201 {object} object{success=bool,receiptNumber=string,payment=models.Payment}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payments [post]
func (ps *PaymentService) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	var req ApplyPaymentRequest

	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

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

	if err := ps.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	paymentDate, _ := time.Parse("2006-01-02", req.PaymentDate)
	amount := money.FromFloat(req.Amount)

	payment, currency, err := ps.applyPayment(r.Context(), req.TenantID, amount, paymentDate, req.PaymentMethod, req.PaymentPeriod)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			SendErrorResponse(w, "Tenant not found", http.StatusNotFound, nil)
			return
		}
		log.Printf("[PAYMENT] Apply failed for tenant %s: %v", req.TenantID, err)
		SendErrorResponse(w, "Failed to record payment", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":       true,
		"receiptNumber": payment.ReceiptNumber,
		"currency":      currency,
		"payment":       payment,
	})
}

// AmendPayment corrects a recorded payment in place
// @Summary Amend a payment
// @Description Update a payment's amount, date and method, recomputing the tenant balance
// @Tags payments
// @Accept json
// @Produce json
// @Param paymentId path string true "Payment ID"
// @Param payment body AmendPaymentRequest true "New payment data"
// @Success 200 {object} object{success=bool,payment=models.Payment}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payments/{paymentId} [put]
func (ps *PaymentService) AmendPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")

	var req AmendPaymentRequest

	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

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

	if err := ps.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	paymentDate, _ := time.Parse("2006-01-02", req.PaymentDate)
	amount := money.FromFloat(req.Amount)

	payment, err := ps.amendPayment(r.Context(), paymentID, amount, paymentDate, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			SendErrorResponse(w, "Payment not found", http.StatusNotFound, nil)
			return
		}
		log.Printf("[PAYMENT] Amend failed for payment %s: %v", paymentID, err)
		SendErrorResponse(w, "Failed to amend payment", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"payment": payment,
	})
}

// ReversePayment deletes a payment and backs out its balance effect
// @Summary Reverse a payment
// @Description Delete a payment record and undo its contribution to the tenant balance
// @Tags payments
// @Produce json
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} object{success=bool}
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /payments/{paymentId} [delete]
func (ps *PaymentService) ReversePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")

	if err := ps.reversePayment(r.Context(), paymentID); err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			SendErrorResponse(w, "Payment not found", http.StatusNotFound, nil)
			return
		}
		log.Printf("[PAYMENT] Reverse failed for payment %s: %v", paymentID, err)
		SendErrorResponse(w, "Failed to reverse payment", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
}

// GetPayment retrieves a single payment
// @Summary Get payment by ID
// @Tags payments
// @Produce json
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} models.Payment
// @Failure 404 {object} ErrorResponse
// @Router /payments/{paymentId} [get]
func (ps *PaymentService) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")

	payment, err := ps.fetchPayment(paymentID)
	if err != nil {
		if err == sql.ErrNoRows {
			SendErrorResponse(w, "Payment not found", http.StatusNotFound, nil)
		} else {
			SendErrorResponse(w, "Failed to fetch payment", http.StatusInternalServerError, nil)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment)
}

// ListPayments retrieves payments with optional filters
// @Summary List payments
// @Tags payments
// @Produce json
// @Param tenantId query string false "Filter by tenant ID"
// @Param status query string false "Filter by status"
// @Success 200 {object} object{payments=[]models.Payment,count=int}
// @Failure 500 {object} ErrorResponse
// @Router /payments [get]
func (ps *PaymentService) ListPayments(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("tenantId")
	status := r.URL.Query().Get("status")
	limit := 50

	payments, err := ps.fetchPayments(tenantID, status, limit)
	if err != nil {
		log.Printf("[PAYMENT] List failed: %v", err)
		SendErrorResponse(w, "Failed to fetch payments", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"payments": payments,
		"count":    len(payments),
	})
}

// applyPayment runs the apply operation with bounded retries on version
// conflicts. The tenant's currency is returned alongside the payment so the
// response can echo it; payments themselves are currency-opaque.
func (ps *PaymentService) applyPayment(ctx context.Context, tenantID string, amount money.Amount, paymentDate time.Time, method, period string) (*models.Payment, string, error) {
	var payment *models.Payment
	var currency string
	err := ps.withRetry(func() error {
		var err error
		payment, currency, err = ps.applyPaymentTx(ctx, tenantID, amount, paymentDate, method, period)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	ps.invalidateBalanceCache(ctx, tenantID)
	return payment, currency, nil
}

func (ps *PaymentService) applyPaymentTx(ctx context.Context, tenantID string, amount money.Amount, paymentDate time.Time, method, period string) (*models.Payment, string, error) {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	tenant, err := ps.getTenantForLedger(tx, tenantID)
	if err != nil {
		return nil, "", err
	}

	res := ledger.Apply(tenant.triple(), amount)

	receiptNumber, err := ps.nextReceiptNumber(tx)
	if err != nil {
		return nil, "", fmt.Errorf("receipt number: %w", err)
	}

	payment := &models.Payment{
		ID:                uuid.NewString(),
		TenantID:          tenantID,
		Amount:            amount,
		OverpaymentCredit: res.OverpaymentCredit,
		PaymentDate:       paymentDate,
		PaymentPeriod:     period,
		PaymentMethod:     method,
		ReceiptNumber:     receiptNumber,
		Status:            models.PaymentCompleted,
	}

	if _, err := tx.Exec(`
		INSERT INTO payments (id, tenant_id, amount, overpayment_credit, payment_date, payment_period, payment_method, receipt_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)`,
		payment.ID, payment.TenantID, payment.Amount, payment.OverpaymentCredit,
		payment.PaymentDate, payment.PaymentPeriod, payment.PaymentMethod,
		payment.ReceiptNumber, payment.Status, time.Now()); err != nil {
		return nil, "", fmt.Errorf("insert payment: %w", err)
	}

	if err := ps.updateTenantBalance(tx, tenantID, res.Balance, &paymentDate, tenant.Version); err != nil {
		return nil, "", err
	}

	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("commit: %w", err)
	}

	log.Printf("[PAYMENT] Applied %s for tenant %s, receipt %s, credit %s",
		amount, tenantID, receiptNumber, res.OverpaymentCredit)
	return payment, tenant.Currency, nil
}

// reversePayment deletes a payment and backs its stored contribution out of
// the tenant triple. The payment's own overpayment_credit is used, not a
// recomputed one: history after this payment may have moved the balance.
func (ps *PaymentService) reversePayment(ctx context.Context, paymentID string) error {
	var tenantID string
	err := ps.withRetry(func() error {
		var err error
		tenantID, err = ps.reversePaymentTx(ctx, paymentID)
		return err
	})
	if err != nil {
		return err
	}

	ps.invalidateBalanceCache(ctx, tenantID)
	return nil
}

func (ps *PaymentService) reversePaymentTx(ctx context.Context, paymentID string) (string, error) {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var tenantID string
	var amount, credit money.Amount
	err = tx.QueryRow(`
		SELECT tenant_id, amount, overpayment_credit FROM payments WHERE id = $1`,
		paymentID).Scan(&tenantID, &amount, &credit)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrPaymentNotFound
		}
		return "", fmt.Errorf("fetch payment: %w", err)
	}

	tenant, err := ps.getTenantForLedger(tx, tenantID)
	if err != nil {
		return "", err
	}

	reversed := ledger.Reverse(tenant.triple(), amount, credit)

	if _, err := tx.Exec(`DELETE FROM payments WHERE id = $1`, paymentID); err != nil {
		return "", fmt.Errorf("delete payment: %w", err)
	}

	if err := ps.updateTenantBalance(tx, tenantID, reversed, nil, tenant.Version); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	log.Printf("[PAYMENT] Reversed payment %s (amount %s, credit %s) for tenant %s",
		paymentID, amount, credit, tenantID)
	return tenantID, nil
}

// amendPayment rewrites a payment in place: the old contribution is backed
// out and the new amount applied against the reconstructed balance, all in
// one write.
func (ps *PaymentService) amendPayment(ctx context.Context, paymentID string, newAmount money.Amount, newDate time.Time, newMethod string) (*models.Payment, error) {
	var payment *models.Payment
	var tenantID string
	err := ps.withRetry(func() error {
		var err error
		payment, tenantID, err = ps.amendPaymentTx(ctx, paymentID, newAmount, newDate, newMethod)
		return err
	})
	if err != nil {
		return nil, err
	}

	ps.invalidateBalanceCache(ctx, tenantID)
	return payment, nil
}

func (ps *PaymentService) amendPaymentTx(ctx context.Context, paymentID string, newAmount money.Amount, newDate time.Time, newMethod string) (*models.Payment, string, error) {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var tenantID, period, receiptNumber string
	var oldAmount, oldCredit money.Amount
	err = tx.QueryRow(`
		SELECT tenant_id, amount, overpayment_credit, payment_period, receipt_number FROM payments WHERE id = $1`,
		paymentID).Scan(&tenantID, &oldAmount, &oldCredit, &period, &receiptNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", ErrPaymentNotFound
		}
		return nil, "", fmt.Errorf("fetch payment: %w", err)
	}

	tenant, err := ps.getTenantForLedger(tx, tenantID)
	if err != nil {
		return nil, "", err
	}

	res := ledger.Amend(tenant.triple(), oldAmount, oldCredit, newAmount)

	if _, err := tx.Exec(`
		UPDATE payments SET amount = $1, overpayment_credit = $2, payment_date = $3, payment_method = $4, updated_at = $5
		WHERE id = $6`,
		newAmount, res.OverpaymentCredit, newDate, newMethod, time.Now(), paymentID); err != nil {
		return nil, "", fmt.Errorf("update payment: %w", err)
	}

	if err := ps.updateTenantBalance(tx, tenantID, res.Balance, &newDate, tenant.Version); err != nil {
		return nil, "", err
	}

	if err := tx.Commit(); err != nil {
		return nil, "", fmt.Errorf("commit: %w", err)
	}

	log.Printf("[PAYMENT] Amended payment %s for tenant %s: %s -> %s",
		paymentID, tenantID, oldAmount, newAmount)

	payment := &models.Payment{
		ID:                paymentID,
		TenantID:          tenantID,
		Amount:            newAmount,
		OverpaymentCredit: res.OverpaymentCredit,
		PaymentDate:       newDate,
		PaymentPeriod:     period,
		PaymentMethod:     newMethod,
		ReceiptNumber:     receiptNumber,
		Status:            models.PaymentCompleted,
	}
	return payment, tenantID, nil
}

// withRetry reruns fn while it reports a version conflict, up to the
// configured bound.
func (ps *PaymentService) withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt <= ps.cfg.MaxWriteRetries; attempt++ {
		err = fn()
		if !errors.Is(err, errVersionConflict) {
			return err
		}
		log.Printf("[PAYMENT] Version conflict, retrying (attempt %d)", attempt+1)
	}
	return fmt.Errorf("tenant update kept conflicting after %d retries: %w", ps.cfg.MaxWriteRetries, err)
}

func (ps *PaymentService) getTenantForLedger(tx *sql.Tx, tenantID string) (*tenantLedgerRow, error) {
	var row tenantLedgerRow
	err := tx.QueryRow(`
		SELECT balance, prepaid_balance, total_paid, currency, version FROM tenants WHERE id = $1`,
		tenantID).Scan(&row.Balance, &row.Prepaid, &row.TotalPaid, &row.Currency, &row.Version)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("fetch tenant: %w", err)
	}
	return &row, nil
}

// updateTenantBalance writes the new triple conditional on the version read
// at the start of the operation. Zero rows affected means another payment
// landed in between; the caller retries the whole read-compute-write.
func (ps *PaymentService) updateTenantBalance(tx *sql.Tx, tenantID string, b ledger.Balance, lastPaymentDate *time.Time, version int) error {
	var result sql.Result
	var err error

	status := ledger.Status(b.Owed)

	if lastPaymentDate != nil {
		result, err = tx.Exec(`
			UPDATE tenants SET balance = $1, prepaid_balance = $2, total_paid = $3, payment_status = $4, last_payment_date = $5, version = version + 1, updated_at = $6
			WHERE id = $7 AND version = $8`,
			b.Owed, b.Prepaid, b.TotalPaid, status, *lastPaymentDate, time.Now(), tenantID, version)
	} else {
		result, err = tx.Exec(`
			UPDATE tenants SET balance = $1, prepaid_balance = $2, total_paid = $3, payment_status = $4, version = version + 1, updated_at = $5
			WHERE id = $6 AND version = $7`,
			b.Owed, b.Prepaid, b.TotalPaid, status, time.Now(), tenantID, version)
	}

	if err != nil {
		return fmt.Errorf("update tenant balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return errVersionConflict
	}

	return nil
}

// nextReceiptNumber derives the receipt number by counting existing payment
// rows and zero-padding to 4 digits. The count runs inside the operation's
// transaction, so two concurrent applies cannot commit the same number
// against one database.
func (ps *PaymentService) nextReceiptNumber(tx *sql.Tx) (string, error) {
	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM payments`).Scan(&count); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", ps.cfg.ReceiptPrefix, count+1), nil
}

func (ps *PaymentService) invalidateBalanceCache(ctx context.Context, tenantID string) {
	if ps.redis == nil {
		return
	}
	if err := ps.redis.Del(ctx, balanceCacheKey(tenantID)).Err(); err != nil {
		log.Printf("[PAYMENT] Failed to invalidate balance cache for tenant %s: %v", tenantID, err)
	}
}

func (ps *PaymentService) fetchPayment(paymentID string) (*models.Payment, error) {
	var p models.Payment
	err := ps.db.QueryRow(`
		SELECT id, tenant_id, amount, overpayment_credit, payment_date, payment_period, payment_method, receipt_number, status, created_at, updated_at
		FROM payments WHERE id = $1`, paymentID).
		Scan(&p.ID, &p.TenantID, &p.Amount, &p.OverpaymentCredit, &p.PaymentDate,
			&p.PaymentPeriod, &p.PaymentMethod, &p.ReceiptNumber, &p.Status,
			&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (ps *PaymentService) fetchPayments(tenantID, status string, limit int) ([]models.Payment, error) {
	query := `
		SELECT id, tenant_id, amount, overpayment_credit, payment_date, payment_period, payment_method, receipt_number, status, created_at, updated_at
		FROM payments WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	if tenantID != "" {
		argCount++
		query += fmt.Sprintf(" AND tenant_id = $%d", argCount)
		args = append(args, tenantID)
	}

	if status != "" {
		argCount++
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, status)
	}

	argCount++
	query += fmt.Sprintf(" ORDER BY payment_date DESC, created_at DESC LIMIT $%d", argCount)
	args = append(args, limit)

	rows, err := ps.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Amount, &p.OverpaymentCredit,
			&p.PaymentDate, &p.PaymentPeriod, &p.PaymentMethod, &p.ReceiptNumber,
			&p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
