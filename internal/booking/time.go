package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// DateLayout is the wire and storage format for calendar dates.  ISO dates
// compare correctly as strings, which keeps the past-date check free of
// timezone conversion bugs.
const DateLayout = "2006-01-02"

// TimeOfDay is a clock time expressed as minutes since midnight.  Reservations
// carry no full timestamps; overlap comparisons are purely time-of-day within
// a single calendar date.
type TimeOfDay int

// ParseTimeOfDay parses an "HH:MM" string.  Seconds are not accepted; the
// schema stores times exactly as the form submits them.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return TimeOfDay(h*60 + m), nil
}

// String renders the time back into "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// OnQuarterHour reports whether the minute component falls on a 15-minute
// boundary (minute in {0, 15, 30, 45}).
func (t TimeOfDay) OnQuarterHour() bool {
	return int(t)%15 == 0
}

// Window is a half-open [Start, End) time-of-day interval on some date.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Overlaps reports whether two half-open intervals intersect.  Back-to-back
// windows (one ending exactly when the other starts) do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && w.End > o.Start
}
