package schedule

import (
	"fmt"
	"time"

	"github.com/glizzus/watchme/internal/crontab"
	"github.com/hashicorp/cronexpr"
)

// NextRunTimes returns the next n times the entry fires after the given time.
// Times are in the location of after.
func NextRunTimes(entry *crontab.Entry, after time.Time, n int) ([]time.Time, error) {
	if n <= 0 {
		return nil, fmt.Errorf("count must be greater than 0")
	}
	expr, err := cronexpr.Parse(entry.Expression())
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", entry.Expression(), err)
	}
	return expr.NextN(after, uint(n)), nil
}
