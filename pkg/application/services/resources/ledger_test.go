package resources

import (
	"testing"
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.August, 3, hour, minute, 0, 0, time.UTC)
}

func span(startHour, startMin, endHour, endMin int) entities.Interval {
	return entities.Interval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestMachineFreeAt(t *testing.T) {
	ledger := NewLedger()
	ledger.ReserveMachine("VMC-1", span(9, 0, 11, 0))

	tests := []struct {
		name     string
		earliest time.Time
		want     time.Time
	}{
		{"before reservation", at(8, 0), at(11, 0)},
		{"inside reservation", at(9, 30), at(11, 0)},
		{"at reservation end", at(11, 0), at(11, 0)},
		{"after reservation", at(13, 0), at(13, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.MachineFreeAt("VMC-1", tt.earliest)
			if !got.Equal(tt.want) {
				t.Errorf("MachineFreeAt = %v, want %v", got, tt.want)
			}
		})
	}

	ledger.ReserveMachine("VMC-1", span(11, 0, 12, 30))
	if got := ledger.MachineFreeAt("VMC-1", at(8, 0)); !got.Equal(at(12, 30)) {
		t.Errorf("watermark after second reservation = %v, want %v", got, at(12, 30))
	}
	if ledger.MachineBusyMinutes("VMC-1") != 210 {
		t.Errorf("busy minutes = %d, want 210", ledger.MachineBusyMinutes("VMC-1"))
	}
	if free := ledger.MachineFreeAt("VMC-2", at(9, 0)); !free.Equal(at(9, 0)) {
		t.Errorf("unreserved machine should be free immediately, got %v", free)
	}
}

// A machine never accepts work inside a gap between reservations; every new
// placement lands after the last reserved end.
func TestMachineFreeAtNeverBackfillsGaps(t *testing.T) {
	ledger := NewLedger()
	ledger.ReserveMachine("M-SHARED", span(6, 0, 7, 0))
	ledger.ReserveMachine("M-SHARED", span(12, 0, 14, 0))

	if got := ledger.MachineFreeAt("M-SHARED", at(7, 0)); !got.Equal(at(14, 0)) {
		t.Errorf("free at = %v, want %v past the gap", got, at(14, 0))
	}
}

func TestPersonFreeAt(t *testing.T) {
	ledger := NewLedger()

	if free := ledger.PersonFreeAt("P01", at(9, 0)); !free.Equal(at(9, 0)) {
		t.Errorf("unreserved person free at = %v, want %v", free, at(9, 0))
	}

	ledger.ReservePersonSetup("P01", span(9, 0, 10, 30))
	if free := ledger.PersonFreeAt("P01", at(9, 0)); !free.Equal(at(10, 30)) {
		t.Errorf("person free at = %v, want %v", free, at(10, 30))
	}
	if free := ledger.PersonFreeAt("P01", at(11, 0)); !free.Equal(at(11, 0)) {
		t.Errorf("earliest bound should win, got %v", free)
	}

	// A later run reservation past a gap leaves the gap free.
	ledger.ReservePersonRun("P01", span(12, 0, 13, 0), entities.HandleSingle)
	if free := ledger.PersonFreeAt("P01", at(10, 30)); !free.Equal(at(10, 30)) {
		t.Errorf("gap between reservations should be free, got %v", free)
	}
}

func TestPersonAvailableFor(t *testing.T) {
	ledger := NewLedger()
	ledger.ReservePersonRun("P01", span(9, 0, 10, 0), entities.HandleDouble)

	// Setup work needs the whole person; even a half-capacity run blocks it.
	if next, ok := ledger.PersonAvailableFor("P01", span(9, 30, 10, 30)); ok || !next.Equal(at(10, 0)) {
		t.Errorf("available = %v at %v, want blocked until %v", ok, next, at(10, 0))
	}
	if next, ok := ledger.PersonAvailableFor("P01", span(10, 0, 11, 0)); !ok || !next.Equal(at(10, 0)) {
		t.Errorf("available = %v at %v, want free at interval start", ok, next)
	}
}

func TestPersonAvailableForRun(t *testing.T) {
	ledger := NewLedger()
	ledger.ReservePersonRun("P01", span(9, 0, 11, 0), entities.HandleDouble)

	// Two double-mode runs share one person.
	if _, ok := ledger.PersonAvailableForRun("P01", span(9, 30, 10, 30), entities.HandleDouble); !ok {
		t.Error("second double-mode run should fit alongside the first")
	}
	// A single-mode run needs full capacity and must wait.
	if next, ok := ledger.PersonAvailableForRun("P01", span(9, 30, 10, 30), entities.HandleSingle); ok || !next.Equal(at(11, 0)) {
		t.Errorf("single-mode run = %v at %v, want blocked until %v", ok, next, at(11, 0))
	}

	// A third double-mode run overflows the two-unit capacity.
	ledger.ReservePersonRun("P01", span(9, 0, 10, 0), entities.HandleDouble)
	if next, ok := ledger.PersonAvailableForRun("P01", span(9, 30, 10, 30), entities.HandleDouble); ok || !next.Equal(at(10, 0)) {
		t.Errorf("third double-mode run = %v at %v, want blocked until %v", ok, next, at(10, 0))
	}

	// A setup reservation blocks any run outright.
	ledger.ReservePersonSetup("P02", span(9, 0, 9, 30))
	if next, ok := ledger.PersonAvailableForRun("P02", span(9, 0, 10, 0), entities.HandleDouble); ok || !next.Equal(at(9, 30)) {
		t.Errorf("run over setup = %v at %v, want blocked until %v", ok, next, at(9, 30))
	}
}

func TestConcurrentSetupSlots(t *testing.T) {
	ledger := NewLedger()
	ledger.ReserveSetupSlot(span(9, 0, 10, 0))
	ledger.ReserveSetupSlot(span(9, 30, 10, 30))

	if count := ledger.ConcurrentSetups(span(9, 45, 10, 15)); count != 2 {
		t.Errorf("concurrent setups = %d, want 2", count)
	}
	if count := ledger.ConcurrentSetups(span(10, 30, 11, 0)); count != 0 {
		t.Errorf("concurrent setups after slots = %d, want 0", count)
	}

	end, found := ledger.NextSetupSlotEnd(span(9, 45, 10, 15))
	if !found || !end.Equal(at(10, 0)) {
		t.Errorf("next slot end = %v (%v), want %v", end, found, at(10, 0))
	}
	if _, found := ledger.NextSetupSlotEnd(span(11, 0, 12, 0)); found {
		t.Error("expected no overlapping slot")
	}
}
