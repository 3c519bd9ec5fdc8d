// Package insights aggregates normalized transactions into the summaries the
// reporting surfaces consume. Every function is pure: inputs are never
// mutated and the same transaction list always produces the same rows in the
// same order.
package insights

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/pkg/api"
)

// PartitionByDirection splits transactions into outflows and inflows. The
// policy is deliberately permissive: only an explicit DEBIT tag counts as an
// outflow, anything else lands in credits. Statement exports occasionally
// carry odd direction tags and the upstream apps treat those as money in.
func PartitionByDirection(transactions []api.Transaction) (debits, credits []api.Transaction) {
	for _, tx := range transactions {
		switch tx.Type {
		case api.TypeDebit:
			debits = append(debits, tx)
		default:
			credits = append(credits, tx)
		}
	}
	return debits, credits
}

// GroupByRetailer folds one direction's transactions into per-retailer rows
// with sum, max and count of amounts. Rows are ordered by total descending;
// equal totals fall back to retailer name ascending so output order is
// deterministic. The same routine serves debits and credits; column naming
// per direction is the report layer's concern.
func GroupByRetailer(transactions []api.Transaction) []api.RetailerSummary {
	grouped := make(map[string]*api.RetailerSummary)
	for _, tx := range transactions {
		row, ok := grouped[tx.Retailer]
		if !ok {
			row = &api.RetailerSummary{Retailer: tx.Retailer}
			grouped[tx.Retailer] = row
		}
		row.Total = row.Total.Add(tx.Amount)
		if tx.Amount.GreaterThan(row.Max) {
			row.Max = tx.Amount
		}
		row.Count++
	}

	summaries := make([]api.RetailerSummary, 0, len(grouped))
	for _, row := range grouped {
		summaries = append(summaries, *row)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if c := summaries[i].Total.Cmp(summaries[j].Total); c != 0 {
			return c > 0
		}
		return summaries[i].Retailer < summaries[j].Retailer
	})
	return summaries
}

// TopRetailers returns the first n rows of a retailer summary, or all of them
// when fewer exist.
func TopRetailers(summaries []api.RetailerSummary, n int) []api.RetailerSummary {
	if n >= len(summaries) {
		return summaries
	}
	return summaries[:n]
}

// GroupByDate performs a full outer join of per-date debit and credit sums.
// Every date present on either side appears exactly once, the absent side is
// zero-filled, and Net is computed after the fill. Rows are chronological.
// Transactions with a missing date are excluded here; they still count in
// GroupByRetailer.
func GroupByDate(debits, credits []api.Transaction) []api.DateSummary {
	spent := sumByDate(debits)
	earned := sumByDate(credits)

	summaries := make([]api.DateSummary, 0, len(spent)+len(earned))
	for _, date := range dateUnion(spent, earned) {
		row := api.DateSummary{
			Date:   date,
			Spent:  spent[date],
			Earned: earned[date],
		}
		row.Net = row.Earned.Sub(row.Spent)
		summaries = append(summaries, row)
	}
	return summaries
}

// NetTotal sums net flow over a date summary. A negative result means the
// window spent more than it earned.
func NetTotal(summaries []api.DateSummary) decimal.Decimal {
	var total decimal.Decimal
	for _, row := range summaries {
		total = total.Add(row.Net)
	}
	return total
}

// Weekly reshapes debit outflows into the date-by-weekday pivot. Cells for
// dates without debit activity stay zero; missing-date transactions are
// excluded, matching GroupByDate.
func Weekly(debits []api.Transaction) api.WeeklyPivot {
	totals := sumByDate(debits)
	dates := make([]time.Time, 0, len(totals))
	for date := range totals {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return api.WeeklyPivot{Dates: dates, Totals: totals}
}

// sumByDate totals amounts per calendar date, skipping missing dates. The
// zero decimal.Decimal behaves as 0, so map misses read back as zero fills.
func sumByDate(transactions []api.Transaction) map[time.Time]decimal.Decimal {
	sums := make(map[time.Time]decimal.Decimal)
	for _, tx := range transactions {
		if !tx.Date.Valid {
			continue
		}
		sums[tx.Date.Time] = sums[tx.Date.Time].Add(tx.Amount)
	}
	return sums
}

// dateUnion returns the ascending set union of the two maps' keys.
func dateUnion(a, b map[time.Time]decimal.Decimal) []time.Time {
	seen := make(map[time.Time]struct{}, len(a)+len(b))
	dates := make([]time.Time, 0, len(a)+len(b))
	for date := range a {
		if _, ok := seen[date]; !ok {
			seen[date] = struct{}{}
			dates = append(dates, date)
		}
	}
	for date := range b {
		if _, ok := seen[date]; !ok {
			seen[date] = struct{}{}
			dates = append(dates, date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
