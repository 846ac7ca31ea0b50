package memory

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
	"github.com/shopsched/shopsched/pkg/domain/repositories"
)

// RosterRepository provides in-memory roster storage
type RosterRepository struct {
	templates   map[string]entities.ShiftTemplate
	assignments map[string][]entities.ShiftAssignment
	overrides   map[string]entities.DailyOverride
}

// NewRosterRepository creates a new in-memory roster repository
func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		templates:   make(map[string]entities.ShiftTemplate),
		assignments: make(map[string][]entities.ShiftAssignment),
		overrides:   make(map[string]entities.DailyOverride),
	}
}

// Verify interface compliance
var _ repositories.RosterRepository = (*RosterRepository)(nil)

func overrideKey(employeeCode string, date time.Time) string {
	return employeeCode + "|" + date.UTC().Format("2006-01-02")
}

// LoadTemplates loads shift templates into the repository
func (r *RosterRepository) LoadTemplates(templates []*entities.ShiftTemplate) error {
	for _, template := range templates {
		if template.Name == "" {
			return fmt.Errorf("shift template without a name")
		}
		r.templates[template.Name] = *template
	}
	return nil
}

// LoadAssignments loads standing assignments into the repository
func (r *RosterRepository) LoadAssignments(assignments []*entities.ShiftAssignment) error {
	for _, assignment := range assignments {
		if assignment.EmployeeCode == "" {
			return fmt.Errorf("assignment without an employee code")
		}
		r.assignments[assignment.EmployeeCode] = append(
			r.assignments[assignment.EmployeeCode], *assignment)
	}
	return nil
}

// LoadOverrides loads daily overrides into the repository
func (r *RosterRepository) LoadOverrides(overrides []*entities.DailyOverride) error {
	for _, override := range overrides {
		if override.EmployeeCode == "" {
			return fmt.Errorf("daily override without an employee code")
		}
		r.overrides[overrideKey(override.EmployeeCode, override.Date)] = *override
	}
	return nil
}

// GetTemplate returns a shift template by name
func (r *RosterRepository) GetTemplate(name string) (*entities.ShiftTemplate, error) {
	template, exists := r.templates[name]
	if !exists {
		return nil, fmt.Errorf("shift template not found: %s", name)
	}
	return &template, nil
}

// GetAssignments returns all assignments for an employee, newest start first
func (r *RosterRepository) GetAssignments(employeeCode string) ([]*entities.ShiftAssignment, error) {
	stored := r.assignments[employeeCode]
	assignments := make([]*entities.ShiftAssignment, 0, len(stored))
	for i := range stored {
		assignment := stored[i]
		assignments = append(assignments, &assignment)
	}
	sort.Slice(assignments, func(i, j int) bool {
		return assignments[i].StartDate.After(assignments[j].StartDate)
	})
	return assignments, nil
}

// GetOverride returns the daily override for an employee and date, or nil
func (r *RosterRepository) GetOverride(
	employeeCode string,
	date time.Time,
) (*entities.DailyOverride, error) {
	override, exists := r.overrides[overrideKey(employeeCode, date)]
	if !exists {
		return nil, nil
	}
	return &override, nil
}

// GetEmployeeCodes returns every employee code with an assignment or
// override, sorted for deterministic iteration
func (r *RosterRepository) GetEmployeeCodes() ([]string, error) {
	seen := make(map[string]bool)
	for code := range r.assignments {
		seen[code] = true
	}
	for key := range r.overrides {
		for i := 0; i < len(key); i++ {
			if key[i] == '|' {
				seen[key[:i]] = true
				break
			}
		}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes, nil
}
