package entities

import "time"

// AssignmentType distinguishes a fixed weekly shift from a rotating pattern
type AssignmentType int

const (
	FixedAssignment AssignmentType = iota
	RotationAssignment
)

// String method for AssignmentType enum
func (t AssignmentType) String() string {
	if t == RotationAssignment {
		return "rotation"
	}
	return "fixed"
}

// ParseAssignmentType normalizes an assignment type token. Unknown tokens
// map to FixedAssignment.
func ParseAssignmentType(raw string) AssignmentType {
	if raw == "rotation" {
		return RotationAssignment
	}
	return FixedAssignment
}

// WeekPattern is one week's entry in a rotating shift pattern. WorkDays may
// be empty, in which case the template's top-level work days apply.
type WeekPattern struct {
	ShiftName string
	StartTime string
	EndTime   string
	Overnight bool
	WorkDays  []time.Weekday
}

// ShiftTemplate describes either a fixed weekly shift (WorkDays set) or a
// rotating multi-week pattern (Pattern set). Times are "HH:MM" strings as
// supplied by the roster source.
type ShiftTemplate struct {
	Name         string
	StartTime    string
	EndTime      string
	Overnight    bool
	GraceMinutes int
	Color        string
	WorkDays     []time.Weekday
	Pattern      []WeekPattern
	WeeksPattern int
}

// Weeks returns the rotation cycle length in weeks, never less than 1.
func (t *ShiftTemplate) Weeks() int {
	if t.WeeksPattern > 0 {
		return t.WeeksPattern
	}
	if len(t.Pattern) > 0 {
		return len(t.Pattern)
	}
	return 1
}

// WorksOn reports whether the given weekday is a work day for the fixed
// template. A template with no work days listed works every day.
func (t *ShiftTemplate) WorksOn(day time.Weekday) bool {
	return weekdayIn(t.WorkDays, day)
}

func weekdayIn(days []time.Weekday, day time.Weekday) bool {
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// WorksOn reports whether the weekday is worked under this pattern entry,
// falling back to the template days when the entry omits its own.
func (p *WeekPattern) WorksOn(day time.Weekday, fallback []time.Weekday) bool {
	if len(p.WorkDays) > 0 {
		return weekdayIn(p.WorkDays, day)
	}
	return weekdayIn(fallback, day)
}

// ShiftAssignment binds an employee to a shift template over a date range.
// At most one assignment is active per employee per date; closing or
// deleting overlapping earlier assignments is the responsibility of the
// collaborator that creates them.
type ShiftAssignment struct {
	EmployeeCode string
	Type         AssignmentType
	TemplateName string
	StartDate    time.Time
	EndDate      *time.Time
}

// ActiveOn reports whether the assignment covers the given date.
func (a *ShiftAssignment) ActiveOn(date time.Time) bool {
	day := date.Truncate(24 * time.Hour)
	if a.StartDate.After(day.Add(24*time.Hour - time.Nanosecond)) {
		return false
	}
	if a.EndDate != nil && a.EndDate.Before(day) {
		return false
	}
	return true
}

// DailyOverride is an explicit, date-specific shift that supersedes the
// employee's standing assignment and any holiday.
type DailyOverride struct {
	EmployeeCode string
	Date         time.Time
	ShiftName    string
	StartTime    string
	EndTime      string
	Overnight    bool
	Color        string
}

// ShiftSource records where an effective shift came from
type ShiftSource int

const (
	SourceUnassigned ShiftSource = iota
	SourceOverride
	SourceHoliday
	SourceAssignment
)

// String method for ShiftSource enum
func (s ShiftSource) String() string {
	switch s {
	case SourceOverride:
		return "override"
	case SourceHoliday:
		return "holiday"
	case SourceAssignment:
		return "assignment"
	default:
		return "unassigned"
	}
}

// EffectiveShift is the resolved shift for one employee on one date. IsOff
// covers the "Public Holiday" and "Weekly Off" pseudo-shifts; Assigned is
// false when the employee has no standing assignment at all.
type EffectiveShift struct {
	ShiftName string
	StartTime string
	EndTime   string
	Overnight bool
	Color     string
	IsOff     bool
	Assigned  bool
	Source    ShiftSource
}
