package scenario

import (
	"testing"
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

const scenarioYAML = `
global:
  start_date_time: "2026-08-03 06:00"
  setup_window: "06:00-22:00"
  production_windows: ["06:00-14:00", "14:00-22:00"]
holidays:
  - start: "2026-08-15"
    name: Independence Day
  - start: "2026-08-20 10:00"
    end: "2026-08-20 14:00"
    name: Maintenance Window
breakdowns:
  - start: "2026-08-05 08:00"
    end: "2026-08-05 12:00"
    machines: [VMC-1]
personnel:
  - {Production-Person: "Production-Person", uid: P01, Name: Asha, level-up: "0"}
  - {Production-Person: "Setup-Person", uid: S01, Name: Charu, level-up: "1"}
shift_templates:
  - name: General
    start_time: "09:00"
    end_time: "17:00"
    color: "#3B82F6"
    work_days: [Mon, Tue, Wed, Thu, Fri]
  - name: AB-Rotation
    weeks_pattern: 2
    pattern:
      - shift_name: Shift A
        start_time: "06:00"
        end_time: "14:00"
      - shift_name: Shift B
        start_time: "14:00"
        end_time: "22:00"
assignments:
  - employee_code: P01
    type: fixed
    template: General
    start_date: "2026-08-03"
  - employee_code: S01
    type: rotation
    template: AB-Rotation
    start_date: "2026-08-03"
    end_date: "2026-12-31"
overrides:
  - employee_code: P01
    date: "2026-08-05"
    shift_name: Night Cover
    start_time: "22:00"
    end_time: "06:00"
    overnight: true
`

func TestParseScenario(t *testing.T) {
	scn, err := Parse([]byte(scenarioYAML))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	wantStart := time.Date(2026, time.August, 3, 6, 0, 0, 0, time.UTC)
	if !scn.Settings.GlobalStartDateTime.Equal(wantStart) {
		t.Errorf("start = %v, want %v", scn.Settings.GlobalStartDateTime, wantStart)
	}
	if scn.Settings.SetupWindow != "06:00-22:00" {
		t.Errorf("setup window = %q", scn.Settings.SetupWindow)
	}
	if len(scn.Settings.ProductionWindows) != 2 {
		t.Errorf("production windows = %v", scn.Settings.ProductionWindows)
	}

	if len(scn.Settings.Holidays) != 2 {
		t.Fatalf("holidays = %d, want 2", len(scn.Settings.Holidays))
	}
	// Bare-date holiday covers the whole day.
	wholeDay := scn.Settings.Holidays[0]
	if got := wholeDay.Minutes(); got != 24*60 {
		t.Errorf("bare-date holiday spans %d minutes, want %d", got, 24*60)
	}
	if wholeDay.Name != "Independence Day" {
		t.Errorf("holiday name = %q", wholeDay.Name)
	}

	if len(scn.Settings.Breakdowns) != 1 ||
		len(scn.Settings.Breakdowns[0].Machines) != 1 {
		t.Errorf("breakdowns = %+v", scn.Settings.Breakdowns)
	}

	if len(scn.Settings.Profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(scn.Settings.Profiles))
	}
	if len(scn.Issues) != 0 {
		t.Errorf("unexpected issues: %+v", scn.Issues)
	}

	if len(scn.Templates) != 2 {
		t.Fatalf("templates = %d, want 2", len(scn.Templates))
	}
	general := scn.Templates[0]
	if len(general.WorkDays) != 5 || general.WorkDays[0] != time.Monday {
		t.Errorf("General work days = %v", general.WorkDays)
	}
	rotation := scn.Templates[1]
	if rotation.Weeks() != 2 || len(rotation.Pattern) != 2 {
		t.Errorf("rotation template = %+v", rotation)
	}

	if len(scn.Assignments) != 2 {
		t.Fatalf("assignments = %d, want 2", len(scn.Assignments))
	}
	if scn.Assignments[1].Type != entities.RotationAssignment {
		t.Errorf("assignment type = %v, want rotation", scn.Assignments[1].Type)
	}
	if scn.Assignments[1].EndDate == nil {
		t.Error("expected end date on second assignment")
	}

	if len(scn.Overrides) != 1 || !scn.Overrides[0].Overnight {
		t.Errorf("overrides = %+v", scn.Overrides)
	}
}

func TestParseScenarioPersonnelIssues(t *testing.T) {
	scn, err := Parse([]byte(`
personnel:
  - {uid: P01, Name: Asha}
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(scn.Settings.Profiles) != 0 {
		t.Errorf("profiles = %d, want 0 on critical parse failure", len(scn.Settings.Profiles))
	}
	if len(scn.Issues) != 1 || scn.Issues[0].Severity != entities.SeverityCritical {
		t.Errorf("issues = %+v, want one critical", scn.Issues)
	}
}

func TestParseScenarioBadInput(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad start", `{global: {start_date_time: "sometime"}}`},
		{"bad holiday", `{holidays: [{start: "not-a-date"}]}`},
		{"inverted interval", `{holidays: [{start: "2026-08-05 10:00", end: "2026-08-05 09:00"}]}`},
		{"bad weekday", `{shift_templates: [{name: X, work_days: [Moonday]}]}`},
		{"bad assignment date", `{assignments: [{employee_code: P01, start_date: "soon"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}
