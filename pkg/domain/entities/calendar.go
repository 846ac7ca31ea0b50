package entities

import "time"

// Interval is a half-open [Start, End) time interval
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Overlaps reports whether two intervals share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Minutes returns the interval length in whole minutes.
func (iv Interval) Minutes() int {
	if iv.End.Before(iv.Start) {
		return 0
	}
	return int(iv.End.Sub(iv.Start) / time.Minute)
}

// Holiday is a plant-wide unavailability interval
type Holiday struct {
	Interval
	Name string
}

// Breakdown is a machine-scoped unavailability interval. An empty machine
// set means the breakdown applies to no machine and is ignored.
type Breakdown struct {
	Interval
	Machines []string
}

// AppliesTo reports whether the breakdown covers the given machine.
func (b Breakdown) AppliesTo(machine string) bool {
	for _, m := range b.Machines {
		if m == machine {
			return true
		}
	}
	return false
}
