// Package statement extracts transactions from statement text exports.
//
// The input is the full extracted text of a payment-app statement PDF, pages
// concatenated in reading order with newlines preserved. A transaction spans
// exactly two physical lines: a summary line and a time line. Everything that
// does not match the pattern (headers, footers, page furniture) is ignored.
package statement

import "regexp"

// currencySymbol precedes every amount on a statement summary line.
const currencySymbol = "₹"

// pattern is the full two-line transaction grammar as one atomic match unit.
// Splitting date/amount/time into separate passes would allow spurious
// cross-matches between unrelated lines, so the whole block matches at once.
// The retailer charset deliberately excludes newlines; the greedy retailer
// group is bounded by the mandatory DEBIT/CREDIT token before the currency
// symbol.
var pattern = regexp.MustCompile(
	`(?P<date>[A-Za-z]{3} \d{1,2}, \d{4}) ` +
		`(?P<direction>Paid to|Received from|Payment to) ` +
		`(?P<retailer>[\w &-]+) ` +
		`(?P<type>DEBIT|CREDIT) ` +
		currencySymbol + `(?P<amount>\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?)\n` +
		`(?P<time>\d{1,2}:\d{2} (?:am|pm))`,
)

var (
	dateIdx      = pattern.SubexpIndex("date")
	directionIdx = pattern.SubexpIndex("direction")
	retailerIdx  = pattern.SubexpIndex("retailer")
	typeIdx      = pattern.SubexpIndex("type")
	amountIdx    = pattern.SubexpIndex("amount")
	timeIdx      = pattern.SubexpIndex("time")
)

// RawRecord is one matched transaction block, fields still in their textual
// form. Every field is non-empty: the record exists only if the full pattern
// matched contiguously.
type RawRecord struct {
	DateText   string
	Direction  string
	Retailer   string
	TypeText   string
	AmountText string
	TimeText   string
}

// Parse scans text for all non-overlapping transaction blocks, left to right,
// and returns them in order of appearance. Text with zero matches yields an
// empty slice; extraction is best effort and never fails.
func Parse(text string) []RawRecord {
	matches := pattern.FindAllStringSubmatch(text, -1)
	records := make([]RawRecord, 0, len(matches))
	for _, m := range matches {
		records = append(records, RawRecord{
			DateText:   m[dateIdx],
			Direction:  m[directionIdx],
			Retailer:   m[retailerIdx],
			TypeText:   m[typeIdx],
			AmountText: m[amountIdx],
			TimeText:   m[timeIdx],
		})
	}
	return records
}
