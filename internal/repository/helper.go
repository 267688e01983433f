package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Fixed-width UTC timestamps sort lexically, which the purge query relies on.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// ParseTime parses a stored timestamp, accepting RFC3339 (with or without fractional seconds)
// and plain "2006-01-02" dates.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, str); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", str)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// nullDecimal converts an optional decimal into a column value; nil is stored as NULL.
func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func scanDecimal(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored amount %q: %w", ns.String, err)
	}
	return &d, nil
}
