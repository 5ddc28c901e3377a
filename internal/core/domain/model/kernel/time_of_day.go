package kernel

import (
	"fmt"
	"time"

	"fooddelivery/internal/pkg/errs"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// TimeOfDay is a wall-clock time without a date, with second precision.
// The zero value is midnight.
type TimeOfDay struct {
	seconds int
}

// NewTimeOfDay builds a TimeOfDay from its components.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	switch {
	case hour < 0 || hour > 23:
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	case minute < 0 || minute > 59:
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	case second < 0 || second > 59:
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("second", second, 0, 59)
	}
	return TimeOfDay{seconds: hour*secondsPerHour + minute*secondsPerMinute + second}, nil
}

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayAt(t), nil
		}
	}
	return TimeOfDay{}, errs.NewValueIsInvalidErrorWithCause(
		"time of day",
		fmt.Errorf("%q is not in HH:MM or HH:MM:SS form", s),
	)
}

// TimeOfDayAt returns the wall-clock reading of t in t's own location.
func TimeOfDayAt(t time.Time) TimeOfDay {
	return TimeOfDay{seconds: t.Hour()*secondsPerHour + t.Minute()*secondsPerMinute + t.Second()}
}

// TimeOfDayFromSeconds is the inverse of Seconds.
func TimeOfDayFromSeconds(seconds int) (TimeOfDay, error) {
	if seconds < 0 || seconds >= secondsPerDay {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("seconds", seconds, 0, secondsPerDay-1)
	}
	return TimeOfDay{seconds: seconds}, nil
}

func (t TimeOfDay) Hour() int   { return t.seconds / secondsPerHour }
func (t TimeOfDay) Minute() int { return t.seconds % secondsPerHour / secondsPerMinute }
func (t TimeOfDay) Second() int { return t.seconds % secondsPerMinute }

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int { return t.seconds }

func (t TimeOfDay) IsEqual(other TimeOfDay) bool { return t.seconds == other.seconds }

// String renders "HH:MM", or "HH:MM:SS" when seconds are set.
func (t TimeOfDay) String() string {
	if t.Second() == 0 {
		return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}
