// Command textdump extracts the text blob from a statement PDF and writes it
// to stdout or a file. This utility is used to collect statement samples for
// unit testing and to diagnose pattern mismatches: when a transaction the
// statement clearly shows does not appear in a report, the dumped text shows
// what the parser actually saw.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spendlens/spendlens/pkg/extract"
	"github.com/spendlens/spendlens/pkg/logging"
	"github.com/spendlens/spendlens/pkg/statement"
)

func main() {
	logger := logging.Setup(logging.DefaultConfig())

	input := flag.String("in", "", "statement file (.pdf or extracted .txt)")
	output := flag.String("out", "", "output file; stdout when empty")
	counts := flag.Bool("counts", false, "also print how many transaction blocks match")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: textdump -in statement.pdf [-out dump.txt] [-counts]")
		os.Exit(2)
	}

	text, err := extract.Text(*input)
	if err != nil {
		logger.Error("failed to extract text", "file", *input, "error", err)
		os.Exit(1)
	}

	if *output == "" {
		fmt.Print(text)
	} else {
		if err := os.WriteFile(*output, []byte(text), 0o600); err != nil {
			logger.Error("failed to write dump", "file", *output, "error", err)
			os.Exit(1)
		}
		logger.Info("wrote dump", "file", *output, "bytes", len(text))
	}

	if *counts {
		records := statement.Parse(text)
		fmt.Fprintf(os.Stderr, "matched %d transaction blocks\n", len(records))
	}
}
