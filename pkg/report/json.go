package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// JSON renders the document as indented JSON with stable field order.
func JSON(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteJSON writes the JSON rendering of the document to path.
func WriteJSON(doc Document, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := JSON(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing json report: %w", err)
	}

	logger.Info("wrote json report", "file", path, "transactions", doc.TransactionCount)
	return nil
}
