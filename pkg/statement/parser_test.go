package statement

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSingleBlock(t *testing.T) {
	text := "Jan 5, 2024 Paid to Coffee Shop DEBIT ₹150.00\n9:15 am"

	records := Parse(text)
	if len(records) != 1 {
		t.Fatalf("records: got %d, want 1", len(records))
	}

	rec := records[0]
	want := RawRecord{
		DateText:   "Jan 5, 2024",
		Direction:  "Paid to",
		Retailer:   "Coffee Shop",
		TypeText:   "DEBIT",
		AmountText: "150.00",
		TimeText:   "9:15 am",
	}
	if rec != want {
		t.Errorf("record:\n got %+v\nwant %+v", rec, want)
	}
}

func TestParseRecordVariants(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantRetailer string
		wantType     string
		wantAmount   string
	}{
		{
			name:         "received from credit",
			text:         "Jan 5, 2024 Received from Employer CREDIT ₹50,000.00\n10:00 am",
			wantRetailer: "Employer",
			wantType:     "CREDIT",
			wantAmount:   "50,000.00",
		},
		{
			name:         "payment to connector",
			text:         "Jan 8, 2024 Payment to Croma Electronics & Appliances DEBIT ₹21,999.00\n2:30 pm",
			wantRetailer: "Croma Electronics & Appliances",
			wantType:     "DEBIT",
			wantAmount:   "21,999.00",
		},
		{
			name:         "hyphenated retailer",
			text:         "Jan 6, 2024 Paid to Big Bazaar - Andheri DEBIT ₹1,234.50\n6:45 pm",
			wantRetailer: "Big Bazaar - Andheri",
			wantType:     "DEBIT",
			wantAmount:   "1,234.50",
		},
		{
			name:         "amount without decimals",
			text:         "Jan 9, 2024 Received from Rahul Sharma CREDIT ₹500\n11:20 am",
			wantRetailer: "Rahul Sharma",
			wantType:     "CREDIT",
			wantAmount:   "500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			records := Parse(tc.text)
			if len(records) != 1 {
				t.Fatalf("records: got %d, want 1", len(records))
			}
			rec := records[0]
			if rec.Retailer != tc.wantRetailer {
				t.Errorf("retailer: got %q, want %q", rec.Retailer, tc.wantRetailer)
			}
			if rec.TypeText != tc.wantType {
				t.Errorf("type: got %q, want %q", rec.TypeText, tc.wantType)
			}
			if rec.AmountText != tc.wantAmount {
				t.Errorf("amount: got %q, want %q", rec.AmountText, tc.wantAmount)
			}
		})
	}
}

func TestParseIgnoresNonMatchingText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty input", ""},
		{"unrelated text", "Transaction Statement for 98XXXXXX21\nPage 1 of 2"},
		{"missing type token", "Jan 5, 2024 Paid to Coffee Shop ₹150.00\n9:15 am"},
		{"missing time line", "Jan 5, 2024 Paid to Coffee Shop DEBIT ₹150.00"},
		{"blank line before time", "Jan 5, 2024 Paid to Coffee Shop DEBIT ₹150.00\n\n9:15 am"},
		{"unknown connector", "Jan 5, 2024 Sent to Coffee Shop DEBIT ₹150.00\n9:15 am"},
		{"malformed time", "Jan 5, 2024 Paid to Coffee Shop DEBIT ₹150.00\n9.15 am"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			records := Parse(tc.text)
			if len(records) != 0 {
				t.Errorf("records: got %d, want 0 (%+v)", len(records), records)
			}
		})
	}
}

func TestParseDoesNotConsumeSurroundingText(t *testing.T) {
	text := "header noise\nJan 5, 2024 Paid to Coffee Shop DEBIT ₹150.00\n9:15 am\nfooter noise\n" +
		"Jan 6, 2024 Paid to Coffee Shop DEBIT ₹85.00\n8:05 am\n"

	records := Parse(text)
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}
	if records[0].DateText != "Jan 5, 2024" || records[1].DateText != "Jan 6, 2024" {
		t.Errorf("dates out of order: %+v", records)
	}
}

func TestParseStatementFixture(t *testing.T) {
	text := loadStatementFixture(t, "phonepe_statement_01.txt")

	records := Parse(text)
	if len(records) != 7 {
		t.Fatalf("records: got %d, want 7", len(records))
	}

	var debits, credits int
	for _, rec := range records {
		switch rec.TypeText {
		case "DEBIT":
			debits++
		case "CREDIT":
			credits++
		}
	}
	if debits != 5 || credits != 2 {
		t.Errorf("direction counts: got %d debits / %d credits, want 5/2", debits, credits)
	}

	// Fields are never empty when the full pattern matched.
	for i, rec := range records {
		for field, value := range map[string]string{
			"date": rec.DateText, "direction": rec.Direction, "retailer": rec.Retailer,
			"type": rec.TypeText, "amount": rec.AmountText, "time": rec.TimeText,
		} {
			if strings.TrimSpace(value) == "" {
				t.Errorf("record %d: empty %s field", i, field)
			}
		}
	}
}

// loadStatementFixture loads a statement text export from tests/data.
func loadStatementFixture(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "tests", "data", "statements", filename))
	if err != nil {
		t.Fatalf("failed to load statement fixture: %v", err)
	}
	return string(data)
}
