package scenario

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shopsched/shopsched/pkg/application/services/roster"
	"github.com/shopsched/shopsched/pkg/application/services/scheduling"
	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// Scenario is everything one YAML file supplies for a scheduling run: the
// global settings (with parsed personnel profiles), the roster data for
// effective-shift resolution, and any parse issues to surface.
type Scenario struct {
	Settings    scheduling.GlobalSettings
	Templates   []*entities.ShiftTemplate
	Assignments []*entities.ShiftAssignment
	Overrides   []*entities.DailyOverride
	Issues      []entities.QualityIssue
}

type scenarioFile struct {
	Global struct {
		StartDateTime     string   `yaml:"start_date_time"`
		SetupWindow       string   `yaml:"setup_window"`
		ProductionWindows []string `yaml:"production_windows"`
	} `yaml:"global"`
	Holidays []struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
		Name  string `yaml:"name"`
	} `yaml:"holidays"`
	Breakdowns []struct {
		Start    string   `yaml:"start"`
		End      string   `yaml:"end"`
		Machines []string `yaml:"machines"`
	} `yaml:"breakdowns"`
	Personnel      []map[string]string `yaml:"personnel"`
	ShiftTemplates []struct {
		Name         string   `yaml:"name"`
		StartTime    string   `yaml:"start_time"`
		EndTime      string   `yaml:"end_time"`
		Overnight    bool     `yaml:"overnight"`
		GraceMinutes int      `yaml:"grace_minutes"`
		Color        string   `yaml:"color"`
		WorkDays     []string `yaml:"work_days"`
		WeeksPattern int      `yaml:"weeks_pattern"`
		Pattern      []struct {
			ShiftName string   `yaml:"shift_name"`
			StartTime string   `yaml:"start_time"`
			EndTime   string   `yaml:"end_time"`
			Overnight bool     `yaml:"overnight"`
			WorkDays  []string `yaml:"work_days"`
		} `yaml:"pattern"`
	} `yaml:"shift_templates"`
	Assignments []struct {
		EmployeeCode string `yaml:"employee_code"`
		Type         string `yaml:"type"`
		Template     string `yaml:"template"`
		StartDate    string `yaml:"start_date"`
		EndDate      string `yaml:"end_date"`
	} `yaml:"assignments"`
	Overrides []struct {
		EmployeeCode string `yaml:"employee_code"`
		Date         string `yaml:"date"`
		ShiftName    string `yaml:"shift_name"`
		StartTime    string `yaml:"start_time"`
		EndTime      string `yaml:"end_time"`
		Overnight    bool   `yaml:"overnight"`
		Color        string `yaml:"color"`
	} `yaml:"overrides"`
}

// Load reads a scenario YAML file
func Load(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scenario file %s: %w", filename, err)
	}
	return Parse(data)
}

// Parse decodes scenario YAML into typed scheduling inputs. Personnel parse
// anomalies become quality issues on the scenario, not errors.
func Parse(data []byte) (*Scenario, error) {
	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	scenario := &Scenario{}

	if file.Global.StartDateTime != "" {
		start, err := parseTimestamp(file.Global.StartDateTime)
		if err != nil {
			return nil, fmt.Errorf("invalid global start_date_time: %s", file.Global.StartDateTime)
		}
		scenario.Settings.GlobalStartDateTime = start
	}
	scenario.Settings.SetupWindow = file.Global.SetupWindow
	scenario.Settings.ProductionWindows = file.Global.ProductionWindows

	for i, raw := range file.Holidays {
		interval, err := parseInterval(raw.Start, raw.End)
		if err != nil {
			return nil, fmt.Errorf("holiday %d: %w", i+1, err)
		}
		scenario.Settings.Holidays = append(scenario.Settings.Holidays,
			entities.Holiday{Interval: interval, Name: raw.Name})
	}

	for i, raw := range file.Breakdowns {
		interval, err := parseInterval(raw.Start, raw.End)
		if err != nil {
			return nil, fmt.Errorf("breakdown %d: %w", i+1, err)
		}
		scenario.Settings.Breakdowns = append(scenario.Settings.Breakdowns,
			entities.Breakdown{Interval: interval, Machines: raw.Machines})
	}

	rows := make([]roster.Row, len(file.Personnel))
	for i, raw := range file.Personnel {
		rows[i] = roster.Row(raw)
	}
	parsed := roster.ParsePersonnel(rows)
	scenario.Settings.Profiles = parsed.Profiles
	for _, issue := range parsed.Issues {
		severity := entities.Warning
		if issue.Severity == entities.SeverityCritical {
			severity = entities.Critical
		}
		scenario.Issues = append(scenario.Issues,
			severity(string(issue.Code), issue.Message))
	}

	for i, raw := range file.ShiftTemplates {
		template := &entities.ShiftTemplate{
			Name:         raw.Name,
			StartTime:    raw.StartTime,
			EndTime:      raw.EndTime,
			Overnight:    raw.Overnight,
			GraceMinutes: raw.GraceMinutes,
			Color:        raw.Color,
			WeeksPattern: raw.WeeksPattern,
		}
		workDays, err := parseWeekdays(raw.WorkDays)
		if err != nil {
			return nil, fmt.Errorf("shift template %d: %w", i+1, err)
		}
		template.WorkDays = workDays
		for j, week := range raw.Pattern {
			days, err := parseWeekdays(week.WorkDays)
			if err != nil {
				return nil, fmt.Errorf("shift template %d pattern week %d: %w", i+1, j+1, err)
			}
			template.Pattern = append(template.Pattern, entities.WeekPattern{
				ShiftName: week.ShiftName,
				StartTime: week.StartTime,
				EndTime:   week.EndTime,
				Overnight: week.Overnight,
				WorkDays:  days,
			})
		}
		scenario.Templates = append(scenario.Templates, template)
	}

	for i, raw := range file.Assignments {
		startDate, err := parseTimestamp(raw.StartDate)
		if err != nil {
			return nil, fmt.Errorf("assignment %d: invalid start_date %s", i+1, raw.StartDate)
		}
		assignment := &entities.ShiftAssignment{
			EmployeeCode: raw.EmployeeCode,
			Type:         entities.ParseAssignmentType(raw.Type),
			TemplateName: raw.Template,
			StartDate:    startDate,
		}
		if raw.EndDate != "" {
			endDate, err := parseTimestamp(raw.EndDate)
			if err != nil {
				return nil, fmt.Errorf("assignment %d: invalid end_date %s", i+1, raw.EndDate)
			}
			assignment.EndDate = &endDate
		}
		scenario.Assignments = append(scenario.Assignments, assignment)
	}

	for i, raw := range file.Overrides {
		date, err := parseTimestamp(raw.Date)
		if err != nil {
			return nil, fmt.Errorf("override %d: invalid date %s", i+1, raw.Date)
		}
		scenario.Overrides = append(scenario.Overrides, &entities.DailyOverride{
			EmployeeCode: raw.EmployeeCode,
			Date:         date,
			ShiftName:    raw.ShiftName,
			StartTime:    raw.StartTime,
			EndTime:      raw.EndTime,
			Overnight:    raw.Overnight,
			Color:        raw.Color,
		})
	}

	return scenario, nil
}

// parseInterval reads a start/end pair. A bare-date start with an empty end
// covers that whole day.
func parseInterval(start, end string) (entities.Interval, error) {
	startTime, err := parseTimestamp(start)
	if err != nil {
		return entities.Interval{}, fmt.Errorf("invalid start %q", start)
	}
	if end == "" {
		return entities.Interval{
			Start: startTime,
			End:   startTime.AddDate(0, 0, 1),
		}, nil
	}
	endTime, err := parseTimestamp(end)
	if err != nil {
		return entities.Interval{}, fmt.Errorf("invalid end %q", end)
	}
	if isBareDate(end) {
		// An end given as a bare date is inclusive of that day.
		endTime = endTime.AddDate(0, 0, 1)
	}
	if !endTime.After(startTime) {
		return entities.Interval{}, fmt.Errorf("end %q not after start %q", end, start)
	}
	return entities.Interval{Start: startTime, End: endTime}, nil
}

func isBareDate(raw string) bool {
	_, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
	return err == nil
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02 15:04", raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func parseWeekdays(raw []string) ([]time.Weekday, error) {
	names := map[string]time.Weekday{
		"sun": time.Sunday, "sunday": time.Sunday,
		"mon": time.Monday, "monday": time.Monday,
		"tue": time.Tuesday, "tuesday": time.Tuesday,
		"wed": time.Wednesday, "wednesday": time.Wednesday,
		"thu": time.Thursday, "thursday": time.Thursday,
		"fri": time.Friday, "friday": time.Friday,
		"sat": time.Saturday, "saturday": time.Saturday,
	}
	var days []time.Weekday
	for _, token := range raw {
		day, ok := names[strings.ToLower(strings.TrimSpace(token))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", token)
		}
		days = append(days, day)
	}
	return days, nil
}
