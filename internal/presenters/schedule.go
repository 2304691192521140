package presenters

import (
	"fmt"
	"strings"
	"time"

	"github.com/glizzus/watchme/internal/crontab"
	"github.com/glizzus/watchme/internal/schedule"
)

const noScheduledWatchers = "No watchers are scheduled"

const runTimeLayout = "2006-01-02 15:04:05"

func entryState(e *crontab.Entry) string {
	if e.Enabled {
		return ""
	}
	return " (disabled)"
}

// BuildScheduleList renders one line per watcher entry: name, a tab, and the
// schedule.
func BuildScheduleList(entries []*crontab.Entry) string {
	if len(entries) == 0 {
		return noScheduledWatchers
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		name, ok := schedule.WatcherName(e)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s\t%s%s", name, e.Expression(), entryState(e)))
	}
	if len(lines) == 0 {
		return noScheduledWatchers
	}
	return strings.Join(lines, "\n")
}

// BuildScheduleDetails renders a watcher's crontab line followed by its
// upcoming run times.
func BuildScheduleDetails(name string, entry *crontab.Entry, runs []time.Time) string {
	if entry == nil {
		return fmt.Sprintf("%s does not have a schedule", name)
	}

	lines := []string{entry.String()}
	for _, r := range runs {
		lines = append(lines, "  next run: "+r.Format(runTimeLayout))
	}
	return strings.Join(lines, "\n")
}
