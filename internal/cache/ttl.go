package cache

import (
	"fmt"
	"strconv"
	"time"
)

// TTL bounds accepted by ParseTTL.
const (
	MinTTLSeconds = 1
	MaxTTLSeconds = 604800

	minutesPerHour = 60
	hoursPerDay    = 24
)

// ErrInvalidTTL is returned for a TTL outside [MinTTLSeconds, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// ParseTTL parses integer seconds ("90") or a duration ("5m", "1h30m").
func ParseTTL(s string) (int, error) {
	seconds, err := strconv.Atoi(s)
	if err != nil {
		d, durErr := time.ParseDuration(s)
		if durErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", durErr)
		}
		seconds = int(d.Seconds())
	}

	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return seconds, nil
}

// FormatDuration formats d compactly: "45s", "30m", "1h5m", "2d3h".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
