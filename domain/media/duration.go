package media

import (
	"fmt"
	"math"
)

// FormatDuration renders seconds as HH:MM:SS, or MM:SS when under an hour.
// Fractional seconds are truncated.
func FormatDuration(seconds float64) string {
	hours := int(math.Floor(seconds / 3600))
	minutes := int(math.Floor(math.Mod(seconds, 3600) / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
