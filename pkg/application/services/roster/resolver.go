package roster

import (
	"fmt"
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
	"github.com/shopsched/shopsched/pkg/domain/repositories"
	"github.com/shopsched/shopsched/pkg/domain/services"
)

// Pseudo-shift labels and colors for non-working days.
const (
	publicHolidayShift = "Public Holiday"
	weeklyOffShift     = "Weekly Off"

	publicHolidayColor = "#EF4444"
	weeklyOffColor     = "#9CA3AF"
	defaultShiftColor  = "#8B5CF6"
)

// Resolver answers which shift an employee effectively works on a date.
// Precedence: daily override, then public holiday, then the standing
// assignment (fixed or rotation), then unassigned.
type Resolver struct {
	repo     repositories.RosterRepository
	holidays []entities.Holiday
}

// NewResolver creates a resolver over the given roster data and plant
// holidays
func NewResolver(repo repositories.RosterRepository, holidays []entities.Holiday) *Resolver {
	return &Resolver{repo: repo, holidays: holidays}
}

// EffectiveShift resolves the shift for one employee on one calendar date.
// The date's clock time is ignored; resolution works on the UTC calendar day.
func (r *Resolver) EffectiveShift(employeeCode string, date time.Time) (entities.EffectiveShift, error) {
	override, err := r.repo.GetOverride(employeeCode, date)
	if err != nil {
		return entities.EffectiveShift{}, fmt.Errorf("looking up override for %s: %w", employeeCode, err)
	}
	if override != nil {
		return entities.EffectiveShift{
			ShiftName: override.ShiftName,
			StartTime: override.StartTime,
			EndTime:   override.EndTime,
			Overnight: override.Overnight,
			Color:     shiftColor(override.Color),
			Assigned:  true,
			Source:    entities.SourceOverride,
		}, nil
	}

	if r.onHoliday(date) {
		return entities.EffectiveShift{
			ShiftName: publicHolidayShift,
			Color:     publicHolidayColor,
			IsOff:     true,
			Assigned:  true,
			Source:    entities.SourceHoliday,
		}, nil
	}

	assignments, err := r.repo.GetAssignments(employeeCode)
	if err != nil {
		return entities.EffectiveShift{}, fmt.Errorf("looking up assignments for %s: %w", employeeCode, err)
	}
	for _, assignment := range assignments {
		if !assignment.ActiveOn(date) {
			continue
		}
		template, err := r.repo.GetTemplate(assignment.TemplateName)
		if err != nil || template == nil {
			continue
		}
		if assignment.Type == entities.RotationAssignment {
			return r.resolveRotation(assignment, template, date), nil
		}
		return r.resolveFixed(template, date), nil
	}

	return entities.EffectiveShift{Source: entities.SourceUnassigned}, nil
}

// resolveFixed applies a fixed weekly template: either the template's own
// hours or a weekly off when the weekday is not worked.
func (r *Resolver) resolveFixed(template *entities.ShiftTemplate, date time.Time) entities.EffectiveShift {
	if !template.WorksOn(date.UTC().Weekday()) {
		return weeklyOff()
	}
	return entities.EffectiveShift{
		ShiftName: template.Name,
		StartTime: template.StartTime,
		EndTime:   template.EndTime,
		Overnight: template.Overnight,
		Color:     shiftColor(template.Color),
		Assigned:  true,
		Source:    entities.SourceAssignment,
	}
}

// resolveRotation picks the week of the rotating pattern that covers the
// date. A pattern with no entry for the computed week resolves as
// unassigned rather than guessing a shift.
func (r *Resolver) resolveRotation(
	assignment *entities.ShiftAssignment,
	template *entities.ShiftTemplate,
	date time.Time,
) entities.EffectiveShift {
	weekIndex := services.RotationWeekIndex(assignment.StartDate, date, template.Weeks())
	if weekIndex >= len(template.Pattern) {
		return entities.EffectiveShift{Source: entities.SourceUnassigned}
	}
	week := template.Pattern[weekIndex]
	if !week.WorksOn(date.UTC().Weekday(), template.WorkDays) {
		return weeklyOff()
	}
	return entities.EffectiveShift{
		ShiftName: week.ShiftName,
		StartTime: week.StartTime,
		EndTime:   week.EndTime,
		Overnight: week.Overnight,
		Color:     shiftColor(template.Color),
		Assigned:  true,
		Source:    entities.SourceAssignment,
	}
}

func (r *Resolver) onHoliday(date time.Time) bool {
	year, month, day := date.UTC().Date()
	noon := time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	for _, holiday := range r.holidays {
		if holiday.Contains(noon) {
			return true
		}
	}
	return false
}

func weeklyOff() entities.EffectiveShift {
	return entities.EffectiveShift{
		ShiftName: weeklyOffShift,
		Color:     weeklyOffColor,
		IsOff:     true,
		Assigned:  true,
		Source:    entities.SourceAssignment,
	}
}

func shiftColor(color string) string {
	if color == "" {
		return defaultShiftColor
	}
	return color
}
