package ledger

import (
	"github.com/shopspring/decimal"
)

// StatementLine pairs a ledger entry with the counterparty balance that
// existed immediately after it.
type StatementLine struct {
	Entry        Entry
	BalanceAfter decimal.Decimal
}

// Statement is a counterparty's reconstructed account history: the balance
// before the earliest recorded entry, the running balance at each entry,
// and the closing balance. By construction the closing balance equals the
// current balance the statement was built from; that round trip is an
// invariant, not a display nicety.
type Statement struct {
	StartingBalance decimal.Decimal
	Lines           []StatementLine
	ClosingBalance  decimal.Decimal
}

// BuildStatement reconstructs the running balance history from the
// counterparty's authoritative current balance and its entries ordered
// ascending by occurrence time. The current balance is the source of
// truth: history is derived backwards from it, never replayed to produce
// it.
func BuildStatement(currentBalance decimal.Decimal, entries []Entry) Statement {
	sum := decimal.Zero
	for i := range entries {
		sum = sum.Add(entries[i].BalanceDelta())
	}
	starting := currentBalance.Sub(sum)

	lines := make([]StatementLine, 0, len(entries))
	running := starting
	for i := range entries {
		running = running.Add(entries[i].BalanceDelta())
		lines = append(lines, StatementLine{
			Entry:        entries[i],
			BalanceAfter: running,
		})
	}

	return Statement{
		StartingBalance: starting,
		Lines:           lines,
		ClosingBalance:  running,
	}
}
