package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Minutes is a simulated time of day expressed as minutes since midnight.
type Minutes float64

const (
	// EndOfDay is the deadline sentinel for packages without a timed deadline.
	EndOfDay Minutes = 24 * 60

	// DefaultStartOfDay is the time trucks leave the hub and packages become available.
	DefaultStartOfDay Minutes = 8 * 60

	// DefaultCorrectionTime is when corrected addresses for wrong-address packages become known.
	DefaultCorrectionTime Minutes = 10*60 + 20
)

var clockPattern = regexp.MustCompile(`(?i)(\d?\d):(\d\d)\s*([ap]m)`)

// ParseClock converts "H:MM am/pm" (or the literal "EOD") to Minutes.
func ParseClock(s string) (Minutes, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "EOD") {
		return EndOfDay, nil
	}

	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("parse clock %q: expected H:MM am/pm", s)
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours < 1 || hours > 12 || minutes > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}

	// 12 am is midnight, 12 pm is noon.
	hours %= 12
	if strings.EqualFold(m[3], "pm") {
		hours += 12
	}

	return Minutes(hours*60 + minutes), nil
}

// ParseWallClock converts a 24-hour "HH:MM" string to Minutes.
func ParseWallClock(s string) (Minutes, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse wall clock %q: expected HH:MM", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse wall clock %q: hours: %w", s, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse wall clock %q: minutes: %w", s, err)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse wall clock %q: out of range", s)
	}

	return Minutes(hours*60 + minutes), nil
}

// String formats the value as H:MM, truncating fractional minutes.
func (m Minutes) String() string {
	if m == EndOfDay {
		return "EOD"
	}
	total := int(math.Floor(float64(m)))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
