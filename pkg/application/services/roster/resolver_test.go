package roster

import (
	"testing"
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
	"github.com/shopsched/shopsched/pkg/infrastructure/repositories/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rosterFixture(t *testing.T) *memory.RosterRepository {
	t.Helper()
	repo := memory.NewRosterRepository()

	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}
	templates := []*entities.ShiftTemplate{
		{
			Name:      "General",
			StartTime: "09:00",
			EndTime:   "17:00",
			Color:     "#3B82F6",
			WorkDays:  weekdays,
		},
		{
			Name: "AB-Rotation",
			Pattern: []entities.WeekPattern{
				{ShiftName: "Shift A", StartTime: "06:00", EndTime: "14:00"},
				{ShiftName: "Shift B", StartTime: "14:00", EndTime: "22:00"},
			},
			WorkDays: weekdays,
		},
	}
	if err := repo.LoadTemplates(templates); err != nil {
		t.Fatalf("loading templates: %v", err)
	}

	// 2026-08-03 is a Monday.
	assignments := []*entities.ShiftAssignment{
		{
			EmployeeCode: "P01",
			Type:         entities.FixedAssignment,
			TemplateName: "General",
			StartDate:    date(2026, time.August, 3),
		},
		{
			EmployeeCode: "S01",
			Type:         entities.RotationAssignment,
			TemplateName: "AB-Rotation",
			StartDate:    date(2026, time.August, 3),
		},
	}
	if err := repo.LoadAssignments(assignments); err != nil {
		t.Fatalf("loading assignments: %v", err)
	}

	overrides := []*entities.DailyOverride{
		{
			EmployeeCode: "P01",
			Date:         date(2026, time.August, 5),
			ShiftName:    "Night Cover",
			StartTime:    "22:00",
			EndTime:      "06:00",
			Overnight:    true,
		},
	}
	if err := repo.LoadOverrides(overrides); err != nil {
		t.Fatalf("loading overrides: %v", err)
	}

	return repo
}

func TestEffectiveShiftPrecedence(t *testing.T) {
	holidays := []entities.Holiday{
		{
			Interval: entities.Interval{
				Start: date(2026, time.August, 4),
				End:   date(2026, time.August, 5),
			},
			Name: "Foundry Day",
		},
	}
	resolver := NewResolver(rosterFixture(t), holidays)

	tests := []struct {
		name      string
		employee  string
		day       time.Time
		shiftName string
		source    entities.ShiftSource
		isOff     bool
	}{
		{"override beats assignment", "P01", date(2026, time.August, 5), "Night Cover", entities.SourceOverride, false},
		{"holiday beats assignment", "P01", date(2026, time.August, 4), "Public Holiday", entities.SourceHoliday, true},
		{"fixed assignment on work day", "P01", date(2026, time.August, 3), "General", entities.SourceAssignment, false},
		{"fixed assignment weekend off", "P01", date(2026, time.August, 8), "Weekly Off", entities.SourceAssignment, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift, err := resolver.EffectiveShift(tt.employee, tt.day)
			if err != nil {
				t.Fatalf("EffectiveShift: %v", err)
			}
			if shift.ShiftName != tt.shiftName {
				t.Errorf("shift name = %q, want %q", shift.ShiftName, tt.shiftName)
			}
			if shift.Source != tt.source {
				t.Errorf("source = %v, want %v", shift.Source, tt.source)
			}
			if shift.IsOff != tt.isOff {
				t.Errorf("IsOff = %v, want %v", shift.IsOff, tt.isOff)
			}
		})
	}
}

func TestEffectiveShiftRotation(t *testing.T) {
	resolver := NewResolver(rosterFixture(t), nil)

	tests := []struct {
		name      string
		day       time.Time
		shiftName string
		start     string
	}{
		{"week zero", date(2026, time.August, 3), "Shift A", "06:00"},
		{"week one", date(2026, time.August, 10), "Shift B", "14:00"},
		{"wraps back to week zero", date(2026, time.August, 17), "Shift A", "06:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shift, err := resolver.EffectiveShift("S01", tt.day)
			if err != nil {
				t.Fatalf("EffectiveShift: %v", err)
			}
			if shift.ShiftName != tt.shiftName || shift.StartTime != tt.start {
				t.Errorf("got %s %s, want %s %s",
					shift.ShiftName, shift.StartTime, tt.shiftName, tt.start)
			}
		})
	}

	// Saturday is not in the rotation's work days.
	shift, err := resolver.EffectiveShift("S01", date(2026, time.August, 8))
	if err != nil {
		t.Fatalf("EffectiveShift: %v", err)
	}
	if !shift.IsOff || shift.ShiftName != "Weekly Off" {
		t.Errorf("expected weekly off on Saturday, got %+v", shift)
	}
}

func TestEffectiveShiftUnassigned(t *testing.T) {
	resolver := NewResolver(rosterFixture(t), nil)

	shift, err := resolver.EffectiveShift("GHOST", date(2026, time.August, 3))
	if err != nil {
		t.Fatalf("EffectiveShift: %v", err)
	}
	if shift.Assigned || shift.Source != entities.SourceUnassigned {
		t.Errorf("expected unassigned, got %+v", shift)
	}

	// Dates before the assignment start resolve as unassigned too.
	shift, err = resolver.EffectiveShift("P01", date(2026, time.July, 20))
	if err != nil {
		t.Fatalf("EffectiveShift: %v", err)
	}
	if shift.Assigned {
		t.Errorf("expected unassigned before start date, got %+v", shift)
	}
}
