package schedule

import (
	"fmt"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
)

// TimeOfDay is a minute-precision local wall-clock time ("HH:MM").
type TimeOfDay struct {
	hour   int
	minute int
}

func NewTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return TimeOfDay{}, errs.ErrInvalidTimeOfDay
	}
	if len(s) != 5 || s[2] != ':' {
		return TimeOfDay{}, errs.ErrInvalidTimeOfDay
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, errs.ErrInvalidTimeOfDay
	}
	return TimeOfDay{hour: h, minute: m}, nil
}

func (t TimeOfDay) Hour() int   { return t.hour }
func (t TimeOfDay) Minute() int { return t.minute }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Before reports strict wall-clock ordering.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.hour != other.hour {
		return t.hour < other.hour
	}
	return t.minute < other.minute
}

// On anchors the wall-clock time to the calendar day of d in d's zone.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.hour, t.minute, 0, 0, d.Location())
}
