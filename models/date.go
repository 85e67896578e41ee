package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component. It marshals to and from
// the "YYYY-MM-DD" JSON form used by the REST API and maps to the DATE column
// type in both supported database backends.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in UTC.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{parsed}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler, producing `"YYYY-MM-DD"`.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts `"YYYY-MM-DD"` and
// JSON null (which leaves the receiver zero).
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}

	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}

	*d = Date{parsed}
	return nil
}

// Value implements driver.Valuer so a Date can be bound as a query argument.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// Scan implements sql.Scanner. PostgreSQL returns DATE columns as time.Time,
// SQLite as TEXT.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		return d.UnmarshalJSON([]byte(`"` + v + `"`))
	case []byte:
		return d.UnmarshalJSON([]byte(`"` + string(v) + `"`))
	default:
		return fmt.Errorf("cannot scan %T into models.Date", src)
	}
}
