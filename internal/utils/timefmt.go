package utils

import (
	"time"
)

const dateLayout = "2006-01-02"

// FormatDate returns the UTC calendar date of the provided time as YYYY-MM-DD.
func FormatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(dateLayout)
}
