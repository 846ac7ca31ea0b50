package timing

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Default windows applied when settings omit or garble their own.
const (
	DefaultSetupWindow      = "06:00-22:00"
	DefaultProductionWindow = "00:00-23:59"
)

var windowPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})-(\d{1,2}):(\d{2})$`)

// Window is a daily shift window in minutes of day. A window whose end does
// not come after its start wraps past midnight.
type Window struct {
	StartMinute int
	EndMinute   int
	Overnight   bool
	Raw         string
}

// ParseWindow parses an "HH:MM-HH:MM" shift window string. Hours clamp to
// 0-23 and minutes to 0-59.
func ParseWindow(raw string) (Window, error) {
	match := windowPattern.FindStringSubmatch(raw)
	if match == nil {
		return Window{}, fmt.Errorf("invalid shift window %q, want HH:MM-HH:MM", raw)
	}

	startHour := clamp(atoi(match[1]), 0, 23)
	startMin := clamp(atoi(match[2]), 0, 59)
	endHour := clamp(atoi(match[3]), 0, 23)
	endMin := clamp(atoi(match[4]), 0, 59)

	start := startHour*60 + startMin
	end := endHour*60 + endMin

	return Window{
		StartMinute: start,
		EndMinute:   end,
		Overnight:   end <= start,
		Raw:         raw,
	}, nil
}

// MustParseWindow parses a window or panics. For fixed defaults and tests.
func MustParseWindow(raw string) Window {
	window, err := ParseWindow(raw)
	if err != nil {
		panic(err)
	}
	return window
}

func atoi(s string) int {
	value, _ := strconv.Atoi(s)
	return value
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Contains reports whether the instant falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return w.containsMinute(t.Hour()*60 + t.Minute())
}

func (w Window) containsMinute(minuteOfDay int) bool {
	if !w.Overnight {
		return minuteOfDay >= w.StartMinute && minuteOfDay < w.EndMinute
	}
	return minuteOfDay >= w.StartMinute || minuteOfDay < w.EndMinute
}

// NextStart returns the next instant at or after t when the window opens.
// If t is already inside the window, t itself is returned.
func (w Window) NextStart(t time.Time) time.Time {
	if w.Contains(t) {
		return t
	}

	startToday := time.Date(
		t.Year(), t.Month(), t.Day(),
		w.StartMinute/60, w.StartMinute%60, 0, 0, t.Location())

	if !t.After(startToday) {
		return startToday
	}
	return startToday.AddDate(0, 0, 1)
}
