package timing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// DefaultHorizonDays bounds how far the calculator will walk past a
// candidate start before declaring the work unschedulable.
const DefaultHorizonDays = 45

// Calendar answers whether work may proceed at an instant, combining shift
// windows with plant holidays and machine-scoped breakdowns.
type Calendar struct {
	Holidays    []entities.Holiday
	Breakdowns  []entities.Breakdown
	HorizonDays int
}

// NewCalendar creates a calendar with the default scheduling horizon
func NewCalendar(holidays []entities.Holiday, breakdowns []entities.Breakdown) *Calendar {
	return &Calendar{
		Holidays:    holidays,
		Breakdowns:  breakdowns,
		HorizonDays: DefaultHorizonDays,
	}
}

func (c *Calendar) horizonDays() int {
	if c.HorizonDays > 0 {
		return c.HorizonDays
	}
	return DefaultHorizonDays
}

func (c *Calendar) onHoliday(t time.Time) bool {
	for _, holiday := range c.Holidays {
		if holiday.Contains(t) {
			return true
		}
	}
	return false
}

func (c *Calendar) inBreakdown(t time.Time, machine string) bool {
	for _, breakdown := range c.Breakdowns {
		if breakdown.AppliesTo(machine) && breakdown.Contains(t) {
			return true
		}
	}
	return false
}

// Allowed reports whether work on the given machine may proceed at t within
// any of the supplied shift windows.
func (c *Calendar) Allowed(t time.Time, machine string, windows []Window) bool {
	if c.onHoliday(t) || c.inBreakdown(t, machine) {
		return false
	}
	for _, window := range windows {
		if window.Contains(t) {
			return true
		}
	}
	return false
}

// Result is the outcome of scheduling a block of work minutes onto the
// calendar. Segments are the contiguous worked slices, in order; a result
// that paused mid-work has more than one segment.
type Result struct {
	Start         time.Time
	End           time.Time
	WorkedMinutes int
	PausedMinutes int
	Segments      []entities.Interval
}

// Schedule walks forward from earliest, consuming durationMin minutes of
// work wherever the calendar allows it and pausing through shift gaps,
// holidays and breakdowns. Paused minutes accumulate only between worked
// minutes; the lead-in before the first workable instant is not counted.
// Walking past the calendar horizon returns an error.
func (c *Calendar) Schedule(
	durationMin int,
	earliest time.Time,
	machine string,
	windows []Window,
) (Result, error) {
	if durationMin < 0 {
		return Result{}, fmt.Errorf("duration cannot be negative, got %d", durationMin)
	}

	cursor := earliest.Truncate(time.Minute)
	deadline := cursor.AddDate(0, 0, c.horizonDays())

	// Skip the lead-in to the first workable minute.
	for !c.Allowed(cursor, machine, windows) {
		cursor = cursor.Add(time.Minute)
		if cursor.After(deadline) {
			return Result{}, fmt.Errorf(
				"no workable minute for machine %s within %d days of %s",
				machine, c.horizonDays(), earliest.Format(time.RFC3339))
		}
	}

	result := Result{Start: cursor, End: cursor}
	if durationMin == 0 {
		return result, nil
	}

	remaining := durationMin
	segmentStart := cursor
	inSegment := true

	for remaining > 0 {
		if cursor.After(deadline) {
			return Result{}, fmt.Errorf(
				"work on machine %s did not complete within %d days of %s",
				machine, c.horizonDays(), earliest.Format(time.RFC3339))
		}

		if c.Allowed(cursor, machine, windows) {
			if !inSegment {
				segmentStart = cursor
				inSegment = true
			}
			remaining--
			result.WorkedMinutes++
		} else {
			if inSegment {
				result.Segments = append(result.Segments,
					entities.Interval{Start: segmentStart, End: cursor})
				inSegment = false
			}
			result.PausedMinutes++
		}
		cursor = cursor.Add(time.Minute)
	}

	if inSegment {
		result.Segments = append(result.Segments,
			entities.Interval{Start: segmentStart, End: cursor})
	}
	result.End = cursor
	return result, nil
}

// FormatDuration renders minutes as a compact label: "4D 8H 37M",
// "8H 37M" or "37M". Zero components are omitted, so 300 minutes is "5H",
// not "5H 0M".
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0M"
	}
	days := minutes / (24 * 60)
	hours := (minutes % (24 * 60)) / 60
	mins := minutes % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dD", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dH", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dM", mins))
	}
	return strings.Join(parts, " ")
}

// FormatTiming renders the human-readable timing label for a schedule row:
// the wall-clock span from setup start to run end, with paused time called
// out when any accumulated.
func FormatTiming(setupStart, runEnd time.Time, pausedMinutes int) string {
	elapsed := int(runEnd.Sub(setupStart) / time.Minute)
	label := FormatDuration(elapsed)
	if pausedMinutes <= 0 {
		return label
	}
	return fmt.Sprintf("%s (paused %s due to shift gaps)", label, FormatDuration(pausedMinutes))
}
