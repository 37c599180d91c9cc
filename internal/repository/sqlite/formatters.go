package sqlite

import (
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the storage format of task dates
const dateLayout = "2006-01-02"

// FormatDateForDB formats a calendar date for storage, dropping the time of day
func FormatDateForDB(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// ParseDateFromDB parses a stored calendar date as UTC midnight.
// RFC3339 values are accepted for rows written by hand.
func ParseDateFromDB(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// FormatDecimalForDB formats a money amount for storage
func FormatDecimalForDB(d decimal.Decimal) string {
	return d.String()
}

// ParseDecimalFromDB parses a stored money amount; an empty column reads as zero
func ParseDecimalFromDB(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
