// Package duration converts free-text durations such as "8h 30m" to integer minutes.
// Strings are a presentation format only; everything internal works in minutes.
package duration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidDuration = errors.New("invalid duration")

var partRegex = regexp.MustCompile(`^(\d+)\s*([hm])$`)

// Parse accepts "8h", "30m", "8h 30m" or "8h30m". An empty string is zero.
func Parse(s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, nil
	}
	// split "8h30m" into "8h 30m"
	s = strings.ReplaceAll(s, "h", "h ")

	total := 0
	seenHours, seenMinutes := false, false
	for _, part := range strings.Fields(s) {
		m := partRegex.FindStringSubmatch(part)
		if m == nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		switch m[2] {
		case "h":
			if seenHours {
				return 0, fmt.Errorf("%w: hours given twice", ErrInvalidDuration)
			}
			seenHours = true
			total += n * 60
		case "m":
			if seenMinutes {
				return 0, fmt.Errorf("%w: minutes given twice", ErrInvalidDuration)
			}
			seenMinutes = true
			total += n
		}
	}
	return total, nil
}

// Format renders minutes as "8h 30m", "45m" or "2h".
func Format(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
