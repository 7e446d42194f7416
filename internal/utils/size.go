package utils

import "fmt"

var fileSizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize converts a byte length into a human-readable string with one decimal place,
// for example "512.0 B" or "1.5 KB". Values beyond the gigabyte range are reported in TB.
func FormatFileSize(bytes int64) string {
	value := float64(bytes)
	if value < 0 {
		value = 0
	}
	for _, unit := range fileSizeUnits {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f TB", value)
}
