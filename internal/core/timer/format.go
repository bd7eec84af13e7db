package timer

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration for the menu bar.
// Fractional seconds are truncated. Compact mode uses two lines.
func FormatDuration(value time.Duration, compact, showSeconds bool) string {
	if value < 0 {
		value = 0
	}
	totalSeconds := int64(value / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case compact && hours > 0:
		return fmt.Sprintf("%dh\n%dm", hours, minutes)
	case compact:
		return fmt.Sprintf("%02d\n%02d", minutes, seconds)
	case showSeconds && hours > 0:
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	case showSeconds:
		return fmt.Sprintf("%02d:%02d", minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%d:%02d", hours, minutes)
	default:
		// Minutes stay unpadded here, unlike the show-seconds branch.
		return fmt.Sprintf("%d:%02d", minutes, seconds)
	}
}
