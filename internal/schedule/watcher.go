package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/glizzus/watchme/internal/crontab"
	"github.com/glizzus/watchme/internal/util"
)

const commentPrefix = "watchme-"


// Comment returns the tag identifying the entry of the named watcher.
func Comment(name string) string {
	return commentPrefix + name
}

// Command returns the command a scheduled watcher runs.
func Command(name string) string {
	return "watchme run " + name
}

// WatcherName extracts the watcher name from an entry's comment.
// The second return value is false for entries not owned by a watcher.
func WatcherName(entry *crontab.Entry) (string, bool) {
	if !strings.HasPrefix(entry.Comment, commentPrefix) {
		return "", false
	}
	return strings.TrimPrefix(entry.Comment, commentPrefix), true
}

// ScheduleOptions configures Watcher.Schedule. Empty time fields take the
// defaults: minute 12, hour 0, and "*" for day, month and weekday.
type ScheduleOptions struct {
	Minute  string
	Hour    string
	Day     string
	Month   string
	Weekday string

	// User owns the crontab. Empty falls back to the watcher's user.
	User string

	// Entry, if set, is mutated and written back instead of creating a new one.
	Entry *crontab.Entry

	// Force overwrites an existing schedule.
	Force bool
}

func (o ScheduleOptions) withDefaults() ScheduleOptions {
	o.Minute = orDefault(o.Minute, "12")
	o.Hour = orDefault(o.Hour, "0")
	o.Day = orDefault(o.Day, Every)
	o.Month = orDefault(o.Month, Every)
	o.Weekday = orDefault(o.Weekday, Every)
	return o
}

// UpdateOptions configures Watcher.UpdateSchedule. Empty fields take the
// defaults: minute 12 and "*" for hour, day and month. The weekday is reset
// to "*".
type UpdateOptions struct {
	Minute string
	Hour   string
	Day    string
	Month  string
	User   string
}

func (o UpdateOptions) withDefaults() UpdateOptions {
	o.Minute = orDefault(o.Minute, "12")
	o.Hour = orDefault(o.Hour, Every)
	o.Day = orDefault(o.Day, Every)
	o.Month = orDefault(o.Month, Every)
	return o
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Watcher manages the cron entry of a single named watcher.
type Watcher struct {
	Name  string
	Store crontab.Store

	// User is the default crontab owner. Empty means the running user.
	User string
}

func NewWatcher(name string, store crontab.Store) *Watcher {
	return &Watcher{Name: name, Store: store}
}

func (w *Watcher) Comment() string {
	return Comment(w.Name)
}

func (w *Watcher) Command() string {
	return Command(w.Name)
}

func (w *Watcher) user(user string) string {
	if user != "" {
		return user
	}
	return w.User
}

// Crontab acquires a fresh handle on the crontab of user.
func (w *Watcher) Crontab(ctx context.Context, user string) (*crontab.Tab, error) {
	return crontab.Open(ctx, w.Store, w.user(user))
}

func (w *Watcher) findEntry(tab *crontab.Tab) (*crontab.Entry, bool) {
	comment := w.Comment()
	return util.FindFirst(tab.Entries(), func(e *crontab.Entry) bool {
		return e.Comment == comment
	})
}

// GetJob returns the watcher's entry, or nil when it has none.
func (w *Watcher) GetJob(ctx context.Context, user string) (*crontab.Entry, error) {
	tab, err := w.Crontab(ctx, user)
	if err != nil {
		return nil, err
	}
	entry, ok := w.findEntry(tab)
	if !ok {
		slog.WarnContext(ctx, "watcher does not have a cron job configured", slog.String("watcher", w.Name))
		return nil, nil
	}
	return entry, nil
}

// HasSchedule reports whether the watcher has an entry in its default crontab.
func (w *Watcher) HasSchedule(ctx context.Context) (bool, error) {
	entry, err := w.GetJob(ctx, "")
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

// Schedule writes the watcher's entry. It fails with *AlreadyScheduledError
// when an entry exists and opts.Force is false, and with *FieldRangeError
// when a time field is out of range. Any existing entry is removed before the
// fields are validated.
func (w *Watcher) Schedule(ctx context.Context, opts ScheduleOptions) (*crontab.Entry, error) {
	opts = opts.withDefaults()

	tab, err := w.Crontab(ctx, opts.User)
	if err != nil {
		return nil, err
	}

	existing := tab.FindComment(w.Comment())
	if len(existing) > 0 && !opts.Force {
		return nil, &AlreadyScheduledError{Name: w.Name}
	}
	if len(existing) > 0 {
		slog.InfoContext(ctx, "Clearing schedule associated with watcher", slog.String("watcher", w.Name))
		if _, err := tab.Remove(ctx, existing...); err != nil {
			return nil, fmt.Errorf("failed to remove existing schedule: %w", err)
		}
	}

	fields, err := validateFields(opts.Minute, opts.Hour, opts.Day, opts.Month, opts.Weekday)
	if err != nil {
		return nil, err
	}

	entry := opts.Entry
	if entry == nil {
		entry = tab.New(w.Command(), w.Comment())
	} else {
		tab.Add(entry)
	}

	entry.SetAll(fields[0], fields[1], fields[2], fields[3], fields[4])
	entry.Enable()
	if err := tab.Write(ctx); err != nil {
		return nil, err
	}

	slog.InfoContext(
		ctx,
		"Scheduled watcher",
		slog.String("watcher", w.Name),
		slog.String("schedule", entry.Expression()),
	)
	return entry, nil
}

// UpdateSchedule rewrites the existing entry in place with new time fields.
// It does nothing and returns nil when the watcher has no entry.
func (w *Watcher) UpdateSchedule(ctx context.Context, opts UpdateOptions) (*crontab.Entry, error) {
	opts = opts.withDefaults()

	entry, err := w.GetJob(ctx, opts.User)
	if err != nil || entry == nil {
		return nil, err
	}

	return w.Schedule(ctx, ScheduleOptions{
		Minute: opts.Minute,
		Hour:   opts.Hour,
		Day:    opts.Day,
		Month:  opts.Month,
		User:   opts.User,
		Entry:  entry,
		Force:  true,
	})
}

// RemoveSchedule deletes the watcher's entry and reports whether one was
// found. The name only labels the log line; the entry is always located by
// the watcher's own name.
func (w *Watcher) RemoveSchedule(ctx context.Context, name, user string) (bool, error) {
	if name == "" {
		name = w.Name
	}

	tab, err := w.Crontab(ctx, user)
	if err != nil {
		return false, err
	}
	entry, ok := w.findEntry(tab)
	if !ok {
		slog.WarnContext(ctx, "watcher does not have a cron job configured", slog.String("watcher", w.Name))
		return false, nil
	}

	slog.InfoContext(ctx, "Clearing schedule associated with watcher", slog.String("watcher", name))
	if _, err := tab.Remove(ctx, entry); err != nil {
		return false, err
	}
	return true, nil
}

// ClearSchedule removes the entries of all watchers from the default crontab
// and returns the updated handle.
func (w *Watcher) ClearSchedule(ctx context.Context) (*crontab.Tab, error) {
	tab, err := w.Crontab(ctx, "")
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Clearing jobs associated with all watchers")
	if _, err := tab.RemoveAll(ctx, commentPrefix); err != nil {
		return nil, err
	}
	return tab, nil
}

// NextRuns returns the next n run times of the watcher's entry in the crontab
// of user after the given time, or nil when it is not scheduled.
func (w *Watcher) NextRuns(ctx context.Context, user string, after time.Time, n int) ([]time.Time, error) {
	entry, err := w.GetJob(ctx, user)
	if err != nil || entry == nil {
		return nil, err
	}
	return NextRunTimes(entry, after, n)
}

// Scheduled lists the entries of every watcher in the crontab of user.
func Scheduled(ctx context.Context, store crontab.Store, user string) ([]*crontab.Entry, error) {
	tab, err := crontab.Open(ctx, store, user)
	if err != nil {
		return nil, err
	}
	return tab.FindCommentPrefix(commentPrefix), nil
}
