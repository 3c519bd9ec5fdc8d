package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendlens/spendlens/pkg/api"
)

// dateLayout matches the statement's "Mon D, YYYY" date rendering.
const dateLayout = "Jan 2, 2006"

// Normalize converts raw records into typed transactions, preserving input
// order. It fails on the first malformed amount or unknown transaction type.
// A date that does not parse is not an error: the transaction keeps a missing
// date and stays in the result, because extraction upstream is lossy and a
// partial row is better than no row.
func Normalize(records []RawRecord) ([]api.Transaction, error) {
	transactions := make([]api.Transaction, 0, len(records))
	for i, rec := range records {
		tx, err := normalizeRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		transactions = append(transactions, tx)
	}
	return transactions, nil
}

// NormalizeLenient is the best-effort counterpart of Normalize: bad records
// are skipped individually and their errors collected, so one corrupt amount
// does not abort the whole batch.
func NormalizeLenient(records []RawRecord) ([]api.Transaction, []error) {
	transactions := make([]api.Transaction, 0, len(records))
	var errs []error
	for i, rec := range records {
		tx, err := normalizeRecord(rec)
		if err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		transactions = append(transactions, tx)
	}
	return transactions, errs
}

func normalizeRecord(rec RawRecord) (api.Transaction, error) {
	amount, err := parseAmount(rec.AmountText)
	if err != nil {
		return api.Transaction{}, fmt.Errorf("retailer %q: %w", rec.Retailer, err)
	}

	txType, err := parseType(rec.TypeText)
	if err != nil {
		return api.Transaction{}, fmt.Errorf("retailer %q: %w", rec.Retailer, err)
	}

	return api.Transaction{
		Date:     parseDate(rec.DateText),
		Retailer: strings.TrimSpace(rec.Retailer),
		Type:     txType,
		Amount:   amount,
		Time:     rec.TimeText,
	}, nil
}

// parseAmount strips thousands separators and parses the remainder as a
// decimal. The parser's grammar should make failure impossible, but the
// normalizer does not assume its input came from the parser.
func parseAmount(text string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(text, ",", "")
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", api.ErrMalformedAmount, text)
	}
	return amount, nil
}

func parseType(text string) (api.TransactionType, error) {
	switch api.TransactionType(text) {
	case api.TypeDebit:
		return api.TypeDebit, nil
	case api.TypeCredit:
		return api.TypeCredit, nil
	default:
		return "", fmt.Errorf("%w: %q", api.ErrUnknownType, text)
	}
}

// parseDate degrades to the missing-date sentinel on failure.
func parseDate(text string) api.Date {
	t, err := time.Parse(dateLayout, text)
	if err != nil {
		return api.Date{}
	}
	return api.NewDate(t)
}
