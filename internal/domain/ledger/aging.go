package ledger

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// AgingPolicy controls how a counterparty's due date is derived from its
// debt origin. When SettlementDay is set (1-31) it anchors the due date to
// that day of the month; otherwise the global payment-terms window applies.
type AgingPolicy struct {
	PaymentTermsDays int
	SettlementDay    *int
}

// DebtAlert describes the oldest still-outstanding debt of a counterparty.
// An alert is produced when the due date is tomorrow, today, or already
// past.
type DebtAlert struct {
	OriginDate   time.Time
	DueDate      time.Time
	DaysUntilDue int
	Overdue      bool
	Balance      decimal.Decimal
}

// ResolveDebtAging finds the origin of the outstanding balance by tracing
// the entry history backwards, derives the due date under the policy, and
// classifies it against today. Returns nil when no alert applies: either
// nothing is owed, or the due date is still more than one day out.
//
// The backward trace starts with the outstanding balance and walks from the
// most recent entry towards the oldest. While any balance remains
// unexplained the entry under the cursor becomes the candidate origin; sale
// and purchase entries consume their balance delta from the remainder,
// payment entries add their paid amount back. The last candidate standing
// when the remainder is exhausted is the oldest entry still covered by the
// debt. Same-day entries are resolved by input ordering only.
func ResolveDebtAging(balance decimal.Decimal, entries []Entry, policy AgingPolicy, today time.Time) *DebtAlert {
	origin, ok := findDebtOrigin(balance, entries)
	if !ok {
		return nil
	}

	dueDate := dueDateFor(origin, policy)
	days := daysBetween(today, dueDate)
	if days > 1 {
		return nil
	}

	return &DebtAlert{
		OriginDate:   origin,
		DueDate:      dueDate,
		DaysUntilDue: days,
		Overdue:      days < 0,
		Balance:      balance,
	}
}

// findDebtOrigin returns the date of the oldest entry still covered by the
// outstanding balance, walking entries (ascending order) backwards.
func findDebtOrigin(balance decimal.Decimal, entries []Entry) (time.Time, bool) {
	remaining := balance
	var origin time.Time
	found := false

	for i := len(entries) - 1; i >= 0; i-- {
		if !remaining.IsPositive() {
			break
		}
		entry := &entries[i]
		origin = entry.OccurredAt
		found = true

		if entry.IsPayment() {
			remaining = remaining.Add(entry.Totals.AmountPaid)
		} else {
			remaining = remaining.Sub(entry.BalanceDelta())
		}
	}

	return origin, found
}

// dueDateFor computes the due date for a debt origin under the policy.
// With a settlement day the origin's day-of-month is replaced by the
// anchor, rolling one month forward when the anchored day precedes the
// origin. Anchors beyond the month's length clamp to its last day.
func dueDateFor(origin time.Time, policy AgingPolicy) time.Time {
	if policy.SettlementDay != nil {
		day := *policy.SettlementDay
		due := anchoredDay(origin.Year(), origin.Month(), day, origin.Location())
		if due.Before(truncateToDay(origin)) {
			due = anchoredDay(origin.Year(), origin.Month()+1, day, origin.Location())
		}
		return due
	}
	return truncateToDay(origin).AddDate(0, 0, policy.PaymentTermsDays)
}

// anchoredDay builds a date on the given day of month, clamping to the last
// day when the month is shorter than the anchor.
func anchoredDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween returns whole calendar days from a to b, negative when b is
// in the past relative to a. Rounding absorbs DST shifts of an hour either
// way.
func daysBetween(a, b time.Time) int {
	a = truncateToDay(a)
	b = truncateToDay(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}
