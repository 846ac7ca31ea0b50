package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopsched/shopsched/pkg/application/dto"
)

// MachineUtilization is one machine's share of the schedule span
type MachineUtilization struct {
	Machine     string
	BusyMinutes int
	Percent     decimal.Decimal
}

// PersonUtilization is one person's setup and production load over the
// schedule span
type PersonUtilization struct {
	Person            string
	SetupMinutes      int
	ProductionMinutes int
	Percent           decimal.Decimal
}

// UtilizationReport is the machine and personnel utilization data the
// external report builder renders into its summary and matrix sheets.
type UtilizationReport struct {
	SpanMinutes int
	Machines    []MachineUtilization
	Personnel   []PersonUtilization
}

// BuildUtilization derives utilization figures from a run's schedule rows.
// A machine is busy from setup start through run end; a setup person is busy
// for the setup phase and a production person for the run phase. Percentages
// are over the schedule makespan, rounded to two decimal places.
func BuildUtilization(result *dto.ScheduleResult) UtilizationReport {
	report := UtilizationReport{SpanMinutes: result.Summary.MakespanMinutes}

	machineMinutes := make(map[string]int)
	setupMinutes := make(map[string]int)
	productionMinutes := make(map[string]int)

	for _, row := range result.Rows {
		machineMinutes[row.Machine] += minutesBetween(row.SetupStart, row.RunEnd)
		setupMinutes[row.SetupPerson] += minutesBetween(row.SetupStart, row.SetupEnd)
		productionMinutes[row.ProductionPerson] += minutesBetween(row.RunStart, row.RunEnd)
	}

	for _, machine := range sortedKeys(machineMinutes) {
		busy := machineMinutes[machine]
		report.Machines = append(report.Machines, MachineUtilization{
			Machine:     machine,
			BusyMinutes: busy,
			Percent:     percentOf(busy, report.SpanMinutes),
		})
	}

	people := make(map[string]bool)
	for person := range setupMinutes {
		people[person] = true
	}
	for person := range productionMinutes {
		people[person] = true
	}
	names := make([]string, 0, len(people))
	for person := range people {
		names = append(names, person)
	}
	sort.Strings(names)

	for _, person := range names {
		total := setupMinutes[person] + productionMinutes[person]
		report.Personnel = append(report.Personnel, PersonUtilization{
			Person:            person,
			SetupMinutes:      setupMinutes[person],
			ProductionMinutes: productionMinutes[person],
			Percent:           percentOf(total, report.SpanMinutes),
		})
	}

	return report
}

func minutesBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

func percentOf(minutes, span int) decimal.Decimal {
	if span <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(minutes)).
		Div(decimal.NewFromInt(int64(span))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
