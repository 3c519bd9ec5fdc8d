// Package api defines the core data structures and errors for spendlens.
package api

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a transaction as outgoing or incoming money.
type TransactionType string

const (
	// TypeDebit is an outgoing payment.
	TypeDebit TransactionType = "DEBIT"
	// TypeCredit is an incoming payment.
	TypeCredit TransactionType = "CREDIT"
)

// Sentinel errors surfaced by the pipeline. Callers match them with errors.Is;
// wrapped messages carry the offending raw field or record.
var (
	// ErrMalformedAmount reports an amount field that is not numeric.
	ErrMalformedAmount = errors.New("malformed amount")
	// ErrUnknownType reports a transaction type outside DEBIT/CREDIT.
	ErrUnknownType = errors.New("unknown transaction type")
	// ErrInvalidWindow reports a non-positive trailing-window day count.
	ErrInvalidWindow = errors.New("invalid trailing window")
)

// Date is a calendar date that may be absent. Statement text extraction is
// lossy, so an unparseable date degrades to Valid=false instead of dropping
// the transaction. Date-keyed aggregations skip invalid dates; retailer
// grouping keeps them.
type Date struct {
	Time  time.Time
	Valid bool
}

// NewDate returns a valid Date truncated to midnight UTC.
func NewDate(t time.Time) Date {
	return Date{
		Time:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

// String renders the date in ISO form, or "-" when missing.
func (d Date) String() string {
	if !d.Valid {
		return "-"
	}
	return d.Time.Format(time.DateOnly)
}

// MarshalJSON renders a valid date as "YYYY-MM-DD" and a missing one as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.Format(time.DateOnly) + `"`), nil
}

// Transaction is a single normalized statement entry. Instances are created
// once by the normalizer and never mutated; filters return subsets of the
// slice, not modified records.
type Transaction struct {
	Date     Date            `json:"date"`
	Retailer string          `json:"retailer"`
	Type     TransactionType `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
	// Time is the "H:MM am/pm" wall-clock text from the statement. It is
	// carried for display and ignored by every aggregation.
	Time string `json:"time,omitempty"`
}

// RetailerSummary is one aggregation row per distinct retailer, scoped to a
// single direction (debits or credits).
type RetailerSummary struct {
	Retailer string          `json:"retailer"`
	Total    decimal.Decimal `json:"total_amount"`
	Max      decimal.Decimal `json:"max_amount"`
	Count    int             `json:"transaction_count"`
}

// DateSummary is one row per calendar date seen in either direction, with the
// missing side zero-filled and Net = Earned - Spent.
type DateSummary struct {
	Date   time.Time       `json:"date"`
	Spent  decimal.Decimal `json:"spent"`
	Earned decimal.Decimal `json:"earned"`
	Net    decimal.Decimal `json:"net"`
}

// WeeklyCell is one cell of the weekly pivot grid.
type WeeklyCell struct {
	Date   time.Time       `json:"date"`
	Day    string          `json:"day"`
	Amount decimal.Decimal `json:"amount"`
}

// WeeklyPivot is a day-of-week by date grid of debit totals. Each date falls
// on exactly one weekday; every other cell in its row is zero.
type WeeklyPivot struct {
	// Dates is ascending and holds every date with debit activity.
	Dates []time.Time
	// Totals is the debit sum per date.
	Totals map[time.Time]decimal.Decimal
}

// Weekdays in calendar order, Monday first. Rendering must follow this order,
// not the alphabetical one.
var Weekdays = [7]time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Amount returns the cell value for a (date, weekday) pair, zero for cells
// absent from the source aggregation.
func (p WeeklyPivot) Amount(date time.Time, day time.Weekday) decimal.Decimal {
	if date.Weekday() != day {
		return decimal.Zero
	}
	if total, ok := p.Totals[date]; ok {
		return total
	}
	return decimal.Zero
}

// Cells flattens the grid into rows ordered by date ascending, then weekday
// Monday through Sunday within each date.
func (p WeeklyPivot) Cells() []WeeklyCell {
	cells := make([]WeeklyCell, 0, len(p.Dates)*len(Weekdays))
	for _, date := range p.Dates {
		for _, day := range Weekdays {
			cells = append(cells, WeeklyCell{
				Date:   date,
				Day:    day.String(),
				Amount: p.Amount(date, day),
			})
		}
	}
	return cells
}

// Spending categories offered by the classification workflow.
const (
	CategoryFood        = "Food"
	CategoryLifestyle   = "Lifestyle"
	CategoryElectronics = "Electronics"
	CategoryFashion     = "Fashion"
	CategoryOther       = "Other"
)

// Classification maps retailer names to spending categories. It is owned by
// the caller; the core only reads it. Category strings outside the known set
// are passed through opaquely.
type Classification map[string]string

// Category returns the category for a retailer and whether it is classified.
func (c Classification) Category(retailer string) (string, bool) {
	category, ok := c[retailer]
	return category, ok
}
