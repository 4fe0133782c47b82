package models

import (
	"time"

	"github.com/rentbooks/backend/internal/money"
)

// Property belongs to a landlord and groups rental units.
type Property struct {
	ID         string    `json:"id" db:"id"`
	LandlordID string    `json:"landlord_id" db:"landlord_id"`
	Name       string    `json:"name" db:"name"`
	Address    string    `json:"address" db:"address"`
	PhotoPath  string    `json:"photo_path" db:"photo_path"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Unit is a rentable unit within a property.
type Unit struct {
	ID         string       `json:"id" db:"id"`
	PropertyID string       `json:"property_id" db:"property_id"`
	Label      string       `json:"label" db:"label"`
	Rent       money.Amount `json:"rent" db:"rent"`
	Occupied   bool         `json:"occupied" db:"occupied"`
}

// LandlordPayment records a payout made to a landlord for a period. Payouts
// are a derived read over collections; they carry no reversal semantics.
type LandlordPayment struct {
	ID         string       `json:"id" db:"id"`
	LandlordID string       `json:"landlord_id" db:"landlord_id"`
	Amount     money.Amount `json:"amount" db:"amount"`
	Period     string       `json:"period" db:"period"`
	PaidAt     time.Time    `json:"paid_at" db:"paid_at"`
}
