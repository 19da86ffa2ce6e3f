package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saleEntry(tenantID uuid.UUID, counterparty *uuid.UUID, delta string, at time.Time) Entry {
	d := dec(delta)
	return *newEntry(tenantID, KindSale, counterparty, nil, EntryTotals{
		Total:        d,
		BalanceDelta: d,
	}, at)
}

func paymentEntry(tenantID uuid.UUID, counterparty *uuid.UUID, amount string, at time.Time) Entry {
	d := dec(amount)
	return *newEntry(tenantID, KindCustomerPayment, counterparty, nil, EntryTotals{
		AmountPaid:   d,
		BalanceDelta: d.Neg(),
	}, at)
}

func TestBuildStatement(t *testing.T) {
	tenantID := uuid.New()
	customerID := uuid.New()
	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
	}

	t.Run("derives starting balance and running balances", func(t *testing.T) {
		entries := []Entry{
			saleEntry(tenantID, &customerID, "50.00", day(1)),
			paymentEntry(tenantID, &customerID, "30.00", day(5)),
			saleEntry(tenantID, &customerID, "40.00", day(9)),
		}
		// deltas sum to 60; current balance 75 implies 15 predating history
		stmt := BuildStatement(dec("75.00"), entries)

		assert.True(t, stmt.StartingBalance.Equal(dec("15.00")))
		require.Len(t, stmt.Lines, 3)
		assert.True(t, stmt.Lines[0].BalanceAfter.Equal(dec("65.00")))
		assert.True(t, stmt.Lines[1].BalanceAfter.Equal(dec("35.00")))
		assert.True(t, stmt.Lines[2].BalanceAfter.Equal(dec("75.00")))
	})

	t.Run("round trip: closing balance equals current balance", func(t *testing.T) {
		entries := []Entry{
			saleEntry(tenantID, &customerID, "12.34", day(1)),
			saleEntry(tenantID, &customerID, "0.01", day(2)),
			paymentEntry(tenantID, &customerID, "5.00", day(3)),
			saleEntry(tenantID, &customerID, "99.99", day(4)),
			paymentEntry(tenantID, &customerID, "107.34", day(5)),
		}
		current := dec("42.42")
		stmt := BuildStatement(current, entries)
		assert.True(t, stmt.ClosingBalance.Equal(current))
	})

	t.Run("empty history means balance predates records", func(t *testing.T) {
		stmt := BuildStatement(dec("20.00"), nil)
		assert.True(t, stmt.StartingBalance.Equal(dec("20.00")))
		assert.True(t, stmt.ClosingBalance.Equal(dec("20.00")))
		assert.Empty(t, stmt.Lines)
	})

	t.Run("negative current balance reconstructs cleanly", func(t *testing.T) {
		entries := []Entry{
			saleEntry(tenantID, &customerID, "10.00", day(1)),
			paymentEntry(tenantID, &customerID, "25.00", day(2)),
		}
		stmt := BuildStatement(dec("-15.00"), entries)
		assert.True(t, stmt.StartingBalance.IsZero())
		assert.True(t, stmt.ClosingBalance.Equal(dec("-15.00")))
	})
}
