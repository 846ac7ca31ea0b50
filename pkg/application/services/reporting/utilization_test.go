package reporting

import (
	"testing"
	"time"

	"github.com/shopsched/shopsched/pkg/application/dto"
	"github.com/shopsched/shopsched/pkg/domain/entities"
)

func stamp(hour, minute int) time.Time {
	return time.Date(2026, time.August, 3, hour, minute, 0, 0, time.UTC)
}

func TestBuildUtilization(t *testing.T) {
	result := dto.NewScheduleResult()
	result.AddRow(entities.ScheduleRow{
		ID: "ORD-1", Machine: "VMC-1",
		SetupPerson: "Charu", ProductionPerson: "Asha",
		SetupStart: stamp(6, 0), SetupEnd: stamp(6, 30),
		RunStart: stamp(6, 30), RunEnd: stamp(8, 30),
	})
	result.AddRow(entities.ScheduleRow{
		ID: "ORD-2", Machine: "VMC-2",
		SetupPerson: "Charu", ProductionPerson: "Balu",
		SetupStart: stamp(8, 30), SetupEnd: stamp(9, 0),
		RunStart: stamp(9, 0), RunEnd: stamp(11, 0),
	})

	report := BuildUtilization(result)

	if report.SpanMinutes != 300 {
		t.Fatalf("span = %d, want 300", report.SpanMinutes)
	}

	if len(report.Machines) != 2 {
		t.Fatalf("expected 2 machines, got %d", len(report.Machines))
	}
	vmc1 := report.Machines[0]
	if vmc1.Machine != "VMC-1" || vmc1.BusyMinutes != 150 {
		t.Errorf("machine[0] = %+v, want VMC-1 with 150 busy minutes", vmc1)
	}
	if vmc1.Percent.String() != "50" {
		t.Errorf("VMC-1 percent = %s, want 50", vmc1.Percent)
	}

	if len(report.Personnel) != 3 {
		t.Fatalf("expected 3 people, got %d", len(report.Personnel))
	}
	byName := make(map[string]PersonUtilization)
	for _, person := range report.Personnel {
		byName[person.Person] = person
	}
	charu := byName["Charu"]
	if charu.SetupMinutes != 60 || charu.ProductionMinutes != 0 {
		t.Errorf("Charu = %+v, want 60 setup minutes", charu)
	}
	if charu.Percent.String() != "20" {
		t.Errorf("Charu percent = %s, want 20", charu.Percent)
	}
	asha := byName["Asha"]
	if asha.ProductionMinutes != 120 {
		t.Errorf("Asha production minutes = %d, want 120", asha.ProductionMinutes)
	}
}

func TestBuildUtilizationEmptyRun(t *testing.T) {
	report := BuildUtilization(dto.NewScheduleResult())
	if report.SpanMinutes != 0 || len(report.Machines) != 0 || len(report.Personnel) != 0 {
		t.Errorf("empty run report = %+v, want all empty", report)
	}
}
