package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimestampLayout is the fixed-width text form stored in timestamp columns.
// Prefix filters (year, year-month, date) match directly against it.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// LocalTime is a wall-clock time persisted as TimestampLayout text.
// Values are stored without zone so that calendar filters match the
// date the operator saw when recording the entry.
type LocalTime struct {
	time.Time
}

// NewLocalTime truncates t to microseconds and drops its zone.
func NewLocalTime(t time.Time) LocalTime {
	t = t.Truncate(time.Microsecond)
	return LocalTime{time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)}
}

// String returns the stored text form.
func (t LocalTime) String() string {
	return t.Format(TimestampLayout)
}

// Value implements driver.Valuer.
func (t LocalTime) Value() (driver.Value, error) {
	return t.Format(TimestampLayout), nil
}

// Scan implements sql.Scanner. Older rows written with a shorter
// fraction (or none) are accepted as well.
func (t *LocalTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		*t = NewLocalTime(v)
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("models: cannot scan %T into LocalTime", src)
	}
}

func (t *LocalTime) parse(s string) error {
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, time.Local)
	if err != nil {
		return fmt.Errorf("models: parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON keeps the stored text form in JSON output.
func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// DatePrefix returns the "YYYY-MM-DD" prefix used for calendar-date filters.
func DatePrefix(d time.Time) string {
	return d.Format("2006-01-02")
}

// MonthPrefix returns the zero-padded "YYYY-MM" prefix for month filters.
func MonthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// YearPrefix returns the "YYYY" prefix for year filters.
func YearPrefix(year int) string {
	return fmt.Sprintf("%04d", year)
}
