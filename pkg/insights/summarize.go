package insights

import (
	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/pkg/api"
)

// Summaries bundles every aggregation over one transaction list.
type Summaries struct {
	Debits  []api.RetailerSummary
	Credits []api.RetailerSummary
	Dates   []api.DateSummary
	Weekly  api.WeeklyPivot
	// Net is the net flow over the whole list; negative means more spent
	// than earned.
	Net decimal.Decimal
}

// Summarize runs the full aggregation engine over a transaction list. It is
// the one-call form the CLI and server use; each piece remains independently
// callable.
func Summarize(transactions []api.Transaction) Summaries {
	debits, credits := PartitionByDirection(transactions)
	dates := GroupByDate(debits, credits)
	return Summaries{
		Debits:  GroupByRetailer(debits),
		Credits: GroupByRetailer(credits),
		Dates:   dates,
		Weekly:  Weekly(debits),
		Net:     NetTotal(dates),
	}
}
