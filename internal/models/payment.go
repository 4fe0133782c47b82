package models

import (
	"time"

	"github.com/rentbooks/backend/internal/money"
)

// Payment statuses. The engine only ever writes COMPLETED; other states
// belong to upstream channels.
const (
	PaymentCompleted = "COMPLETED"
)

// Payment is one cash payment received from a tenant. OverpaymentCredit is
// the portion of this specific payment that became prepaid credit at the
// moment it was applied; it is stored so this one payment can be backed out
// later without recomputing history.
type Payment struct {
	ID                string       `json:"id" db:"id"`
	TenantID          string       `json:"tenant_id" db:"tenant_id"`
	Amount            money.Amount `json:"amount" db:"amount"`
	OverpaymentCredit money.Amount `json:"overpayment_credit" db:"overpayment_credit"`
	PaymentDate       time.Time    `json:"payment_date" db:"payment_date"`
	PaymentPeriod     string       `json:"payment_period" db:"payment_period"` // e.g. "2026-08"
	PaymentMethod     string       `json:"payment_method" db:"payment_method"`
	ReceiptNumber     string       `json:"receipt_number" db:"receipt_number"`
	Status            string       `json:"status" db:"status"`
	CreatedAt         time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at" db:"updated_at"`
}
