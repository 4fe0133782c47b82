package models

import (
	"time"

	"github.com/rentbooks/backend/internal/money"
)

// Tenant represents a tenant occupying a unit. The balance, prepaid_balance
// and total_paid columns are the materialized view of the tenant's payment
// history; the version column guards concurrent balance writes.
type Tenant struct {
	ID              string       `json:"id" db:"id"`
	FullName        string       `json:"full_name" db:"full_name"`
	Email           string       `json:"email" db:"email"`
	Phone           string       `json:"phone" db:"phone"`
	UnitID          string       `json:"unit_id" db:"unit_id"`
	MonthlyRent     money.Amount `json:"monthly_rent" db:"monthly_rent"`
	Balance         money.Amount `json:"balance" db:"balance"`
	PrepaidBalance  money.Amount `json:"prepaid_balance" db:"prepaid_balance"`
	TotalPaid       money.Amount `json:"total_paid" db:"total_paid"`
	PaymentStatus   string       `json:"payment_status" db:"payment_status"`
	LastPaymentDate *time.Time   `json:"last_payment_date" db:"last_payment_date"`
	Currency        string       `json:"currency" db:"currency"` // opaque, e.g. "UGX" or "USD"
	Version         int          `json:"-" db:"version"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}
