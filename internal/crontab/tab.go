package crontab

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/glizzus/watchme/internal/util"
)

// line is one crontab line. For parsed entries, parsed holds the rendering
// at read time; raw is written back until the entry renders differently.
type line struct {
	raw    string
	parsed string
	entry  *Entry
}

func (l line) String() string {
	if l.entry == nil {
		return l.raw
	}
	if rendered := l.entry.String(); l.raw == "" || rendered != l.parsed {
		return rendered
	}
	return l.raw
}

// Tab is a handle on one user's crontab.
type Tab struct {
	store Store
	user  string
	lines []line
}

// Open reads the crontab of user from store. An empty user means the
// running user.
func Open(ctx context.Context, store Store, user string) (*Tab, error) {
	data, err := store.Read(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to read crontab: %w", err)
	}
	return Parse(store, user, data), nil
}

// Parse builds a Tab from raw crontab contents. Writes go to store.
func Parse(store Store, user string, data []byte) *Tab {
	t := &Tab{store: store, user: user}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return t
	}
	for _, raw := range strings.Split(text, "\n") {
		entry, err := ParseEntry(raw)
		if err != nil {
			t.lines = append(t.lines, line{raw: raw})
			continue
		}
		t.lines = append(t.lines, line{raw: raw, parsed: entry.String(), entry: entry})
	}
	return t
}

func (t *Tab) User() string {
	return t.user
}

// Entries returns the jobs in file order.
func (t *Tab) Entries() []*Entry {
	var entries []*Entry
	for _, l := range t.lines {
		if l.entry != nil {
			entries = append(entries, l.entry)
		}
	}
	return entries
}

// FindComment returns the entries whose comment equals comment.
func (t *Tab) FindComment(comment string) []*Entry {
	return util.Filter(t.Entries(), func(e *Entry) bool {
		return e.Comment == comment
	})
}

// FindCommentPrefix returns the entries whose comment starts with prefix.
func (t *Tab) FindCommentPrefix(prefix string) []*Entry {
	return util.Filter(t.Entries(), func(e *Entry) bool {
		return strings.HasPrefix(e.Comment, prefix)
	})
}

// New appends an enabled entry running every minute. The caller sets the
// schedule and calls Write.
func (t *Tab) New(command, comment string) *Entry {
	entry := &Entry{
		Command: command,
		Comment: comment,
		Enabled: true,
	}
	entry.SetAll("*", "*", "*", "*", "*")
	t.lines = append(t.lines, line{entry: entry})
	return entry
}

// Add appends an existing entry unless it is already part of the table.
func (t *Tab) Add(entry *Entry) {
	if slices.Contains(t.Entries(), entry) {
		return
	}
	t.lines = append(t.lines, line{entry: entry})
}

// Remove drops the given entries and flushes the table. It reports how many
// lines were removed; nothing is written when none were.
func (t *Tab) Remove(ctx context.Context, entries ...*Entry) (int, error) {
	before := len(t.lines)
	t.lines = slices.DeleteFunc(t.lines, func(l line) bool {
		return l.entry != nil && slices.Contains(entries, l.entry)
	})
	removed := before - len(t.lines)
	if removed == 0 {
		return 0, nil
	}
	if err := t.Write(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}

// RemoveAll drops every entry whose comment starts with prefix and flushes
// the table.
func (t *Tab) RemoveAll(ctx context.Context, prefix string) (int, error) {
	return t.Remove(ctx, t.FindCommentPrefix(prefix)...)
}

// Bytes renders the table in crontab format.
func (t *Tab) Bytes() []byte {
	var b strings.Builder
	for _, l := range t.lines {
		b.WriteString(l.String())
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func (t *Tab) String() string {
	return string(t.Bytes())
}

// Write flushes the table to its store.
func (t *Tab) Write(ctx context.Context) error {
	if err := t.store.Write(ctx, t.user, t.Bytes()); err != nil {
		return fmt.Errorf("failed to write crontab: %w", err)
	}
	return nil
}
