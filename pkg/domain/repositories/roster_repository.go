package repositories

import (
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// RosterRepository provides access to shift templates, standing assignments
// and daily overrides for effective-shift resolution
type RosterRepository interface {
	GetTemplate(name string) (*entities.ShiftTemplate, error)
	GetAssignments(employeeCode string) ([]*entities.ShiftAssignment, error)
	GetOverride(employeeCode string, date time.Time) (*entities.DailyOverride, error)
	GetEmployeeCodes() ([]string, error)
	LoadTemplates(templates []*entities.ShiftTemplate) error
	LoadAssignments(assignments []*entities.ShiftAssignment) error
	LoadOverrides(overrides []*entities.DailyOverride) error
}
