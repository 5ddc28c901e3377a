package kernel

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrTimeWindowIsNotConstructed = errors.New("TimeWindow must be created via NewTimeWindow constructor")

// TimeWindow is a daily interval of wall-clock time with both ends inclusive.
//
// A window whose start is later than its end crosses midnight: 22:00-02:00
// contains 23:30 and 01:15 but not 12:00. A window that starts and ends at the
// same instant is rejected because it is ambiguous between "never" and "always".
type TimeWindow struct {
	start TimeOfDay
	end   TimeOfDay
	guard guard.ConstructorGuard
}

func NewTimeWindow(start, end TimeOfDay) (TimeWindow, error) {
	if start.IsEqual(end) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause(
			"time window",
			fmt.Errorf("start %s equals end %s", start, end),
		)
	}
	return TimeWindow{start: start, end: end, guard: guard.NewConstructorGuard()}, nil
}

// ParseTimeWindow parses both ends with ParseTimeOfDay.
func ParseTimeWindow(start, end string) (TimeWindow, error) {
	s, startErr := ParseTimeOfDay(start)
	e, endErr := ParseTimeOfDay(end)
	if err := errors.Join(startErr, endErr); err != nil {
		return TimeWindow{}, err
	}
	return NewTimeWindow(s, e)
}

func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

func (w TimeWindow) Start() TimeOfDay { return w.start }
func (w TimeWindow) End() TimeOfDay   { return w.end }

func (w TimeWindow) CrossesMidnight() bool {
	return w.start.seconds > w.end.seconds
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t TimeOfDay) bool {
	if w.CrossesMidnight() {
		return t.seconds >= w.start.seconds || t.seconds <= w.end.seconds
	}
	return t.seconds >= w.start.seconds && t.seconds <= w.end.seconds
}

func (w TimeWindow) String() string {
	return w.start.String() + "-" + w.end.String()
}
