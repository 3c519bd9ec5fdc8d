// Command spendlens parses payment-app statement exports and aggregates the
// transactions into retailer, date, weekly and category summaries.
package main

import (
	"fmt"
	"os"

	"github.com/spendlens/spendlens/pkg/logging"
)

const version = "0.2.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "report":
		logger := logging.Setup(logging.DefaultConfig())
		err = runReport(os.Args[2:], logger)
	case "serve":
		logger := logging.Setup(logging.ServerConfig())
		err = runServe(os.Args[2:], logger)
	case "version":
		fmt.Println("spendlens", version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: spendlens <command> [flags]

Commands:
  report    Parse a statement file and write JSON/CSV reports
  serve     Run the HTTP API
  version   Print the version

Run 'spendlens <command> -h' for command flags.
`)
}
