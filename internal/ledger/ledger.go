// Package ledger holds the balance arithmetic for tenant rent payments.
// Every function here is pure: it maps a current balance triple plus a
// payment delta to a new triple, and the callers own persistence.
package ledger

import "github.com/rentbooks/backend/internal/money"

// Payment status labels stored on the tenant row.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// Balance is the per-tenant running state the engine reads and writes.
//
// Owed is what the tenant currently owes for billed periods, Prepaid is
// credit held from past overpayment, TotalPaid is the lifetime sum of
// applied payment amounts (adjusted back down on reversal and amendment).
// All three are non-negative by construction of money.Amount.
type Balance struct {
	Owed      money.Amount
	Prepaid   money.Amount
	TotalPaid money.Amount
}

// ApplyResult carries the new triple plus the overpayment credit this one
// payment generated. The credit is persisted on the payment record so the
// payment's effect can be backed out later without replaying history.
type ApplyResult struct {
	Balance           Balance
	OverpaymentCredit money.Amount
}

// Status derives the tenant payment status from an owed balance.
func Status(owed money.Amount) string {
	if owed.IsZero() {
		return StatusPaid
	}
	return StatusPending
}

// Apply computes the effect of a cash payment on a balance triple.
//
// The order is fixed: the payment first cancels existing prepaid credit,
// the remaining fresh money pays down the owed balance up to what is owed,
// and any excess becomes new prepaid credit.
func Apply(cur Balance, amount money.Amount) ApplyResult {
	afterPrepaid := amount.Sub(cur.Prepaid)
	newPrepaid := cur.Prepaid.Sub(amount)

	towardsOwed := afterPrepaid.Min(cur.Owed)
	newOwed := cur.Owed.Sub(towardsOwed)
	overpayment := afterPrepaid.Sub(towardsOwed)

	return ApplyResult{
		Balance: Balance{
			Owed:      newOwed,
			Prepaid:   newPrepaid.Add(overpayment),
			TotalPaid: cur.TotalPaid.Add(amount),
		},
		OverpaymentCredit: overpayment,
	}
}

// Reverse backs a payment's contribution out of a balance triple using the
// overpayment credit stored on the payment record, not a recomputed one:
// later payments may have moved the balance, so only the delta this payment
// is known to have contributed can safely be subtracted.
//
// When other payments were applied after the reversed one, the result is an
// approximation of the history-without-this-payment, not a ledger replay.
func Reverse(cur Balance, amount, credit money.Amount) Balance {
	return Balance{
		Owed:      cur.Owed.Add(amount).Sub(credit),
		Prepaid:   cur.Prepaid.Sub(credit),
		TotalPaid: cur.TotalPaid.Sub(amount),
	}
}

// Amend recomputes a payment in place: it reconstructs the triple as if the
// old payment had amount zero, then applies the new amount against that
// reconstructed state. The same non-commutativity caveat as Reverse applies
// when other payments landed in between.
func Amend(cur Balance, oldAmount, oldCredit, newAmount money.Amount) ApplyResult {
	base := Balance{
		Owed:    cur.Owed.Add(oldAmount).Sub(oldCredit),
		Prepaid: cur.Prepaid.Sub(oldCredit),
	}

	res := Apply(base, newAmount)
	res.Balance.TotalPaid = cur.TotalPaid.Add(newAmount).Sub(oldAmount)
	return res
}
