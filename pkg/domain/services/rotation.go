package services

import "time"

// utcMidnight normalizes a timestamp to 00:00 UTC of its calendar date.
// Rotation math works in whole UTC days so daylight-saving transitions in
// the plant's local zone cannot shift the week index.
func utcMidnight(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysSince returns the number of whole UTC days from start to current.
// Negative when current precedes start.
func DaysSince(start, current time.Time) int {
	return int(utcMidnight(current).Sub(utcMidnight(start)) / (24 * time.Hour))
}

// RotationWeekIndex computes which week of a rotating pattern applies on
// the given date: floor(daysSinceStart/7) mod weeks. Dates before the
// assignment start clamp to week 0, and a non-positive cycle length is
// treated as a one-week cycle.
func RotationWeekIndex(assignmentStart, current time.Time, weeks int) int {
	if weeks <= 0 {
		weeks = 1
	}
	days := DaysSince(assignmentStart, current)
	if days < 0 {
		return 0
	}
	return (days / 7) % weeks
}
