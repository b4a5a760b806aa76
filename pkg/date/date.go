// Copyright (c) 2026 The entertainment-api authors. All rights reserved.
// Author: a.wozniak.dev@gmail.com

// Package date provides a calendar day type that serializes as YYYY-MM-DD.
//
// The standard time.Time marshals to RFC 3339 with a time component, which
// leaks into API payloads and breaks the date-only contract of premiere and
// publication fields. Date keeps database (DATE column) and JSON
// representations aligned.
package date

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Layout is the wire and storage format.
const Layout = "2006-01-02"

// Date is a calendar day without time-of-day or zone.
type Date struct {
	time.Time
}

// Of truncates a time.Time to its calendar day in UTC.
func Of(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Parse reads a strict YYYY-MM-DD string.
func Parse(value string) (Date, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(value))
	if err != nil {
		return Date{}, fmt.Errorf("date: parse %q: %w", value, err)
	}
	return Date{Time: t}, nil
}

// String returns the YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(Layout)
}

// MarshalJSON writes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON reads a quoted YYYY-MM-DD string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		*d = Date{}
		return nil
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so a Date binds to a DATE column.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// Scan implements sql.Scanner for DATE column reads.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Of(v)
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("date: cannot scan %T", src)
	}
}
