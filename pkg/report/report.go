// Package report renders aggregation summaries as flat, stably-named records
// so consumers can be simple row renderers. Building the same summaries twice
// produces byte-identical output; nothing here depends on the clock.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/pkg/api"
	"github.com/spendlens/spendlens/pkg/insights"
)

// topDebitors caps the shortlist of largest outflow retailers.
const topDebitors = 5

// DebitRetailerRow is one outflow row of the retailer table.
type DebitRetailerRow struct {
	Retailer     string          `json:"retailer"`
	TotalSpent   decimal.Decimal `json:"total_spent"`
	HighestSpent decimal.Decimal `json:"highest_spent"`
	Count        int             `json:"transaction_count"`
}

// CreditRetailerRow is one inflow row. The algorithm behind it is identical
// to the debit side; only the column names differ.
type CreditRetailerRow struct {
	Retailer        string          `json:"retailer"`
	TotalCredited   decimal.Decimal `json:"total_credited"`
	HighestCredited decimal.Decimal `json:"highest_credited"`
	Count           int             `json:"transaction_count"`
}

// DateRow is one day of the date-wise table.
type DateRow struct {
	Date   string          `json:"date"`
	Spent  decimal.Decimal `json:"spent"`
	Earned decimal.Decimal `json:"earned"`
	Net    decimal.Decimal `json:"net"`
}

// WeeklyRow is one cell of the weekday pivot grid, dates ascending and
// weekdays Monday through Sunday within each date.
type WeeklyRow struct {
	Date   string          `json:"date"`
	Day    string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// CategoryRow is one category of classified expenditure.
type CategoryRow struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Document is the complete report over one statement.
type Document struct {
	TransactionCount int                 `json:"transaction_count"`
	Net              decimal.Decimal     `json:"net_total"`
	Debits           []DebitRetailerRow  `json:"retailers_debit"`
	Credits          []CreditRetailerRow `json:"retailers_credit"`
	// TopDebitors is the head of the debit table, the retailers most money
	// went to.
	TopDebitors []DebitRetailerRow `json:"top_debitors"`
	Dates       []DateRow          `json:"dates"`
	Weekly      []WeeklyRow        `json:"weekly"`
	Categories  []CategoryRow      `json:"categories,omitempty"`
}

// Build flattens summaries into a Document. categories may be nil when no
// classification was supplied.
func Build(s insights.Summaries, txCount int, categories map[string]decimal.Decimal) Document {
	cells := s.Weekly.Cells()
	doc := Document{
		TransactionCount: txCount,
		Net:              s.Net,
		Debits:           make([]DebitRetailerRow, 0, len(s.Debits)),
		Credits:          make([]CreditRetailerRow, 0, len(s.Credits)),
		TopDebitors:      make([]DebitRetailerRow, 0, topDebitors),
		Dates:            make([]DateRow, 0, len(s.Dates)),
		Weekly:           make([]WeeklyRow, 0, len(cells)),
	}

	for _, row := range s.Debits {
		doc.Debits = append(doc.Debits, debitRow(row))
	}
	for _, row := range insights.TopRetailers(s.Debits, topDebitors) {
		doc.TopDebitors = append(doc.TopDebitors, debitRow(row))
	}
	for _, row := range s.Credits {
		doc.Credits = append(doc.Credits, CreditRetailerRow{
			Retailer:        row.Retailer,
			TotalCredited:   row.Total,
			HighestCredited: row.Max,
			Count:           row.Count,
		})
	}
	for _, row := range s.Dates {
		doc.Dates = append(doc.Dates, DateRow{
			Date:   row.Date.Format(time.DateOnly),
			Spent:  row.Spent,
			Earned: row.Earned,
			Net:    row.Net,
		})
	}
	for _, cell := range cells {
		doc.Weekly = append(doc.Weekly, WeeklyRow{
			Date:   cell.Date.Format(time.DateOnly),
			Day:    cell.Day,
			Amount: cell.Amount,
		})
	}
	doc.Categories = categoryRows(categories)

	return doc
}

func debitRow(row api.RetailerSummary) DebitRetailerRow {
	return DebitRetailerRow{
		Retailer:     row.Retailer,
		TotalSpent:   row.Total,
		HighestSpent: row.Max,
		Count:        row.Count,
	}
}

// categoryRows orders category totals descending, ties by name ascending, the
// same tie-break the retailer tables use.
func categoryRows(categories map[string]decimal.Decimal) []CategoryRow {
	if len(categories) == 0 {
		return nil
	}
	rows := make([]CategoryRow, 0, len(categories))
	for category, total := range categories {
		rows = append(rows, CategoryRow{Category: category, Total: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if c := rows[i].Total.Cmp(rows[j].Total); c != 0 {
			return c > 0
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}
