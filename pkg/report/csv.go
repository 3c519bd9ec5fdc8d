package report

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
)

// CSV table filenames written under the output directory.
const (
	DebitsFile     = "retailers_debit.csv"
	CreditsFile    = "retailers_credit.csv"
	DatesFile      = "dates.csv"
	WeeklyFile     = "weekly.csv"
	CategoriesFile = "categories.csv"
)

// WriteCSV writes each table of the document as a CSV file under dir,
// creating the directory if needed. The categories table is only written when
// a classification produced rows.
func WriteCSV(doc Document, dir string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	tables := []struct {
		name    string
		headers []string
		rows    [][]string
	}{
		{DebitsFile, []string{"retailer", "total_spent", "highest_spent", "transaction_count"}, debitRows(doc)},
		{CreditsFile, []string{"retailer", "total_credited", "highest_credited", "transaction_count"}, creditRows(doc)},
		{DatesFile, []string{"date", "spent", "earned", "net"}, dateRows(doc)},
		{WeeklyFile, []string{"date", "day", "amount"}, weeklyRows(doc)},
	}
	if len(doc.Categories) > 0 {
		tables = append(tables, struct {
			name    string
			headers []string
			rows    [][]string
		}{CategoriesFile, []string{"category", "total"}, categoryCSVRows(doc)})
	}

	for _, table := range tables {
		path := filepath.Join(dir, table.name)
		if err := writeTable(path, table.headers, table.rows); err != nil {
			return err
		}
		logger.Debug("wrote csv table", "file", path, "rows", len(table.rows))
	}

	logger.Info("wrote csv report", "dir", dir, "transactions", doc.TransactionCount)
	return nil
}

func writeTable(path string, headers []string, rows [][]string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening csv file: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		file.Close()
		return fmt.Errorf("writing csv headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			file.Close()
			return fmt.Errorf("writing csv record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return fmt.Errorf("flushing csv: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing csv file: %w", err)
	}
	return nil
}

func debitRows(doc Document) [][]string {
	rows := make([][]string, 0, len(doc.Debits))
	for _, r := range doc.Debits {
		rows = append(rows, []string{
			r.Retailer,
			r.TotalSpent.StringFixed(2),
			r.HighestSpent.StringFixed(2),
			strconv.Itoa(r.Count),
		})
	}
	return rows
}

func creditRows(doc Document) [][]string {
	rows := make([][]string, 0, len(doc.Credits))
	for _, r := range doc.Credits {
		rows = append(rows, []string{
			r.Retailer,
			r.TotalCredited.StringFixed(2),
			r.HighestCredited.StringFixed(2),
			strconv.Itoa(r.Count),
		})
	}
	return rows
}

func dateRows(doc Document) [][]string {
	rows := make([][]string, 0, len(doc.Dates))
	for _, r := range doc.Dates {
		rows = append(rows, []string{
			r.Date,
			r.Spent.StringFixed(2),
			r.Earned.StringFixed(2),
			r.Net.StringFixed(2),
		})
	}
	return rows
}

func weeklyRows(doc Document) [][]string {
	rows := make([][]string, 0, len(doc.Weekly))
	for _, r := range doc.Weekly {
		rows = append(rows, []string{r.Date, r.Day, r.Amount.StringFixed(2)})
	}
	return rows
}

func categoryCSVRows(doc Document) [][]string {
	rows := make([][]string, 0, len(doc.Categories))
	for _, r := range doc.Categories {
		rows = append(rows, []string{r.Category, r.Total.StringFixed(2)})
	}
	return rows
}
