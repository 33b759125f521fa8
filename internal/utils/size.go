package utils

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize converts a byte length into a human-readable string such as
// "0 B", "1.5 KB" or "1 MB". The value keeps one decimal place at most and
// drops a trailing zero.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 " + sizeUnits[0]
	}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(sizeUnits)-1 {
		value /= 1024
		unitIndex++
	}
	rounded := math.Round(value*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + sizeUnits[unitIndex]
}
