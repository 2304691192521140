package crontab

import (
	"errors"
	"strings"

	"github.com/hashicorp/cronexpr"
)

// ErrNotEntry is returned by ParseEntry for lines that do not describe a job.
var ErrNotEntry = errors.New("not a cron entry")

var specials = map[string]struct{}{
	"@reboot":   {},
	"@yearly":   {},
	"@annually": {},
	"@monthly":  {},
	"@weekly":   {},
	"@daily":    {},
	"@midnight": {},
	"@hourly":   {},
}

// Entry is a single job line of a crontab.
type Entry struct {
	Minute  string
	Hour    string
	Day     string
	Month   string
	Weekday string

	// Special holds an @-descriptor such as "@daily". When set it replaces
	// the five time fields.
	Special string

	Command string
	Comment string
	Enabled bool
}

// SetAll sets the five time fields and clears any descriptor.
func (e *Entry) SetAll(minute, hour, day, month, weekday string) {
	e.Minute = minute
	e.Hour = hour
	e.Day = day
	e.Month = month
	e.Weekday = weekday
	e.Special = ""
}

func (e *Entry) Enable() {
	e.Enabled = true
}

func (e *Entry) Disable() {
	e.Enabled = false
}

// Expression returns the schedule part of the line.
func (e *Entry) Expression() string {
	if e.Special != "" {
		return e.Special
	}
	return strings.Join([]string{e.Minute, e.Hour, e.Day, e.Month, e.Weekday}, " ")
}

// String renders the entry as a crontab line, without a trailing newline.
func (e *Entry) String() string {
	line := e.Expression() + " " + e.Command
	if e.Comment != "" {
		line += " # " + e.Comment
	}
	if !e.Enabled {
		line = "# " + line
	}
	return line
}

// ParseEntry parses one crontab line. Lines commented out with a leading '#'
// are returned as disabled entries when the remainder is a valid job.
func ParseEntry(line string) (*Entry, error) {
	body := strings.TrimSpace(line)
	enabled := true
	if strings.HasPrefix(body, "#") {
		enabled = false
		body = strings.TrimSpace(strings.TrimPrefix(body, "#"))
	}
	if body == "" {
		return nil, ErrNotEntry
	}

	body, comment := splitComment(body)
	entry := &Entry{Comment: comment, Enabled: enabled}

	if strings.HasPrefix(body, "@") {
		special, command, _ := cutField(body)
		if _, ok := specials[special]; !ok || command == "" {
			return nil, ErrNotEntry
		}
		entry.Special = special
		entry.Command = command
		return entry, nil
	}

	var fields [5]string
	rest := body
	for i := range fields {
		field, remainder, ok := cutField(rest)
		if !ok {
			return nil, ErrNotEntry
		}
		fields[i] = field
		rest = remainder
	}
	if rest == "" {
		return nil, ErrNotEntry
	}
	if _, err := cronexpr.Parse(strings.Join(fields[:], " ")); err != nil {
		return nil, ErrNotEntry
	}

	entry.SetAll(fields[0], fields[1], fields[2], fields[3], fields[4])
	entry.Command = rest
	return entry, nil
}

func splitComment(body string) (string, string) {
	idx := strings.LastIndex(body, " #")
	if idx < 0 {
		return body, ""
	}
	return strings.TrimSpace(body[:idx]), strings.TrimSpace(body[idx+2:])
}

func cutField(s string) (field, rest string, ok bool) {
	s = strings.TrimLeft(s, " \t")
	if s == "" {
		return "", "", false
	}
	idx := strings.IndexAny(s, " \t")
	if idx < 0 {
		return s, "", true
	}
	return s[:idx], strings.TrimLeft(s[idx:], " \t"), true
}
