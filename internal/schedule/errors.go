package schedule

import "fmt"

// AlreadyScheduledError is returned when a watcher already has an entry and
// the caller did not ask to overwrite it.
type AlreadyScheduledError struct {
	Name string
}

func (e *AlreadyScheduledError) Error() string {
	return fmt.Sprintf("%s already has a schedule. Use --force to update.", e.Name)
}

var _ error = (*AlreadyScheduledError)(nil)

// FieldRangeError reports a time field outside of its legal domain.
type FieldRangeError struct {
	Field string
	Value string
	Min   int
	Max   int
}

func (e *FieldRangeError) Error() string {
	return fmt.Sprintf("%s must be in [%d..%d] or equal to *", e.Field, e.Min, e.Max)
}

var _ error = (*FieldRangeError)(nil)
