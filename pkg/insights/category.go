package insights

import (
	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/pkg/api"
)

// AggregateByCategory rolls a retailer summary up into per-category totals
// using a caller-supplied classification. Retailers in the classification but
// absent from the summary contribute nothing; the map may well reference
// retailers outside the current window. Categories nothing classifies into do
// not appear in the result.
func AggregateByCategory(classification api.Classification, summaries []api.RetailerSummary) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(summaries))
	for _, row := range summaries {
		totals[row.Retailer] = row.Total
	}

	byCategory := make(map[string]decimal.Decimal)
	for retailer, category := range classification {
		total, ok := totals[retailer]
		if !ok {
			continue
		}
		byCategory[category] = byCategory[category].Add(total)
	}
	return byCategory
}
