package render

import "github.com/dustin/go-humanize"

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize formats a byte count in 1024-based units with at most two
// decimals, e.g. "0 Bytes", "1.5 KB", "2.25 MB". Sizes of a terabyte or
// more stay in GB. Negative sizes format as "0 Bytes".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	return humanize.FtoaWithDigits(value, 2) + " " + sizeUnits[unit]
}
