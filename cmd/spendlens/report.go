package main

import (
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spendlens/spendlens/pkg/api"
	"github.com/spendlens/spendlens/pkg/config"
	"github.com/spendlens/spendlens/pkg/extract"
	"github.com/spendlens/spendlens/pkg/insights"
	"github.com/spendlens/spendlens/pkg/report"
	"github.com/spendlens/spendlens/pkg/statement"
)

// runReport runs the whole pipeline over one statement file and writes the
// JSON and CSV reports.
func runReport(args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	input := fs.String("in", "", "statement file (.pdf or extracted .txt)")
	configPath := fs.String("config", "config.json", "config file (optional)")
	days := fs.Int("days", -1, "trailing window in days; 0 analyzes the full statement (default: configured window)")
	strict := fs.Bool("strict", false, "fail on the first bad record instead of skipping it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return fmt.Errorf("-in is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	text, err := extract.Text(*input)
	if err != nil {
		return err
	}

	records := statement.Parse(text)
	logger.Info("parsed statement", "file", *input, "records", len(records))

	var transactions []api.Transaction
	if *strict {
		transactions, err = statement.Normalize(records)
		if err != nil {
			return err
		}
	} else {
		var errs []error
		transactions, errs = statement.NormalizeLenient(records)
		for _, e := range errs {
			logger.Warn("skipped record", "error", e)
		}
	}

	// The flag overrides the configured window; 0 disables filtering.
	window := *days
	if window < 0 {
		window = cfg.WindowDays
	}
	if window > 0 {
		transactions, err = insights.FilterTrailing(transactions, window, time.Now())
		if err != nil {
			return err
		}
		logger.Info("applied trailing window", "days", window, "transactions", len(transactions))
	}

	var classification api.Classification
	if cfg.ClassificationFile != "" {
		classification, err = config.LoadClassification(cfg.ClassificationFile)
		if err != nil {
			return err
		}
		logger.Info("loaded classification", "file", cfg.ClassificationFile, "retailers", len(classification))
	}

	summaries := insights.Summarize(transactions)
	doc := report.Build(summaries, len(transactions),
		insights.AggregateByCategory(classification, summaries.Debits))

	// WriteCSV creates the output directory.
	if err := report.WriteCSV(doc, cfg.OutputDir, logger); err != nil {
		return err
	}
	if err := report.WriteJSON(doc, filepath.Join(cfg.OutputDir, "report.json"), logger); err != nil {
		return err
	}

	logger.Info("report complete",
		"transactions", len(transactions),
		"retailers_debit", len(doc.Debits),
		"retailers_credit", len(doc.Credits),
		"net", doc.Net.StringFixed(2),
	)
	return nil
}
