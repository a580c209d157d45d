package todo

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted textual date format.
const DateLayout = "2006-01-02"

// TodayToken is the symbolic due date meaning the current day.
const TodayToken = "today"

// Date is a calendar day with no time or zone. The zero Date is invalid.
// Dates are comparable with ==.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day. Out of range
// values are normalized the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current date according to clock, or time.Now if clock is nil.
func Today(clock Clock) Date {
	if clock == nil {
		clock = time.Now
	}
	return DateOf(clock())
}

// ParseDate parses text in YYYY-MM-DD form. Anything else, including
// impossible days such as 2024-13-40, returns ErrInvalidDate.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q (want %s)", ErrInvalidDate, s, "YYYY-MM-DD")
	}
	return DateOf(t), nil
}

// ParseDueDate is ParseDate with the "today" token (any case) resolved
// against clock first.
func ParseDueDate(s string, clock Clock) (Date, error) {
	if strings.EqualFold(strings.TrimSpace(s), TodayToken) {
		return Today(clock), nil
	}
	return ParseDate(s)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return d.t
}

// String formats d as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
