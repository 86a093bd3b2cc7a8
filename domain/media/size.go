package media

import "fmt"

const (
	oneKilobyte = 1024
	oneMegabyte = oneKilobyte * 1024
	oneGigabyte = oneMegabyte * 1024
)

// FormatByteSize renders a byte count as B, KB, MB or GB.
// KB and above always carry exactly one decimal digit.
func FormatByteSize(bytes int64) string {
	switch {
	case bytes < oneKilobyte:
		return fmt.Sprintf("%d B", bytes)
	case bytes < oneMegabyte:
		return fmt.Sprintf("%.1f KB", float64(bytes)/oneKilobyte)
	case bytes < oneGigabyte:
		return fmt.Sprintf("%.1f MB", float64(bytes)/oneMegabyte)
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/oneGigabyte)
	}
}

// BytesToMB converts a byte count to (fractional) megabytes
func BytesToMB(bytes int64) float64 {
	return float64(bytes) / oneMegabyte
}
