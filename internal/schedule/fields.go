package schedule

import "strconv"

// Every is the wildcard accepted by every time field.
const Every = "*"

type fieldDomain struct {
	name     string
	min, max int
}

var (
	minuteDomain  = fieldDomain{"minute", 0, 59}
	hourDomain    = fieldDomain{"hour", 0, 23}
	dayDomain     = fieldDomain{"day", 1, 31}
	monthDomain   = fieldDomain{"month", 1, 12}
	weekdayDomain = fieldDomain{"weekday", 0, 6}
)

func (d fieldDomain) validate(value string) (string, error) {
	if value == Every {
		return value, nil
	}
	if !isDigits(value) {
		return "", d.rangeError(value)
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < d.min || n > d.max {
		return "", d.rangeError(value)
	}
	return strconv.Itoa(n), nil
}

func (d fieldDomain) rangeError(value string) error {
	return &FieldRangeError{Field: d.name, Value: value, Min: d.min, Max: d.max}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateFields checks minute, hour, day, month and weekday in that order and
// stops at the first failure.
func validateFields(minute, hour, day, month, weekday string) ([5]string, error) {
	var out [5]string
	domains := [5]fieldDomain{minuteDomain, hourDomain, dayDomain, monthDomain, weekdayDomain}
	values := [5]string{minute, hour, day, month, weekday}
	for i, d := range domains {
		v, err := d.validate(values[i])
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
