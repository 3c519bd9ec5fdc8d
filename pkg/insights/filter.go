package insights

import (
	"fmt"
	"time"

	"github.com/spendlens/spendlens/pkg/api"
)

// FilterTrailing keeps transactions dated within the last days calendar days
// up to now. The reference instant is truncated to its calendar date before
// the window is applied, so results do not depend on the time of day the
// filter runs. Transactions with a missing date cannot be compared and are
// dropped. The surfaces impose a minimum of 7 days; the filter itself only
// rejects non-positive windows.
func FilterTrailing(transactions []api.Transaction, days int, now time.Time) ([]api.Transaction, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: %d days", api.ErrInvalidWindow, days)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -days)

	kept := make([]api.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !tx.Date.Valid {
			continue
		}
		if tx.Date.Time.Before(start) {
			continue
		}
		kept = append(kept, tx)
	}
	return kept, nil
}
