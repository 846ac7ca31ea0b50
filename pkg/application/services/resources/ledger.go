package resources

import (
	"sort"
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// personCapacityUnits is the total concurrent capacity of one operator.
// A setup or a single-mode run claims all of it; a double-mode run claims
// half, so one operator can tend two double-mode machines at once.
const personCapacityUnits = 2

// runUnits returns the operator capacity one run consumes for the given
// handle mode.
func runUnits(mode entities.HandleMode) int {
	return personCapacityUnits / mode.UnitsPerTick()
}

// personReservation marks an operator busy over an interval. Setup
// reservations always hold the full capacity.
type personReservation struct {
	interval entities.Interval
	units    int
	setup    bool
}

// Ledger tracks machine and personnel reservations accumulated over a
// scheduling run. All methods are deterministic; the ledger is not safe for
// concurrent use and a run owns exactly one.
type Ledger struct {
	machineNext    map[string]time.Time
	machineMinutes map[string]int
	personBusy     map[string][]personReservation
	setupSlots     []entities.Interval
}

// NewLedger creates an empty reservation ledger
func NewLedger() *Ledger {
	return &Ledger{
		machineNext:    make(map[string]time.Time),
		machineMinutes: make(map[string]int),
		personBusy:     make(map[string][]personReservation),
	}
}

// MachineFreeAt returns the first instant at or after earliest when the
// machine is free. A machine is occupied from the start of its first
// reservation through the end of its last; work is never slotted into an
// interior gap.
func (l *Ledger) MachineFreeAt(machine string, earliest time.Time) time.Time {
	if next, seen := l.machineNext[machine]; seen && next.After(earliest) {
		return next
	}
	return earliest
}

// ReserveMachine records a busy interval on the machine, advances its
// next-free watermark and accrues its minutes toward utilization.
func (l *Ledger) ReserveMachine(machine string, iv entities.Interval) {
	if !iv.End.After(iv.Start) {
		return
	}
	if next, seen := l.machineNext[machine]; !seen || iv.End.After(next) {
		l.machineNext[machine] = iv.End
	}
	l.machineMinutes[machine] += iv.Minutes()
}

// MachineBusyMinutes returns the cumulative reserved minutes on the machine.
func (l *Ledger) MachineBusyMinutes(machine string) int {
	return l.machineMinutes[machine]
}

// reservePerson appends a reservation and keeps the person's list in start
// order.
func (l *Ledger) reservePerson(person string, res personReservation) {
	if !res.interval.End.After(res.interval.Start) {
		return
	}
	l.personBusy[person] = append(l.personBusy[person], res)
	sort.SliceStable(l.personBusy[person], func(i, j int) bool {
		return l.personBusy[person][i].interval.Start.Before(l.personBusy[person][j].interval.Start)
	})
}

// ReservePersonSetup marks the person fully busy performing a setup.
func (l *Ledger) ReservePersonSetup(person string, iv entities.Interval) {
	l.reservePerson(person, personReservation{interval: iv, units: personCapacityUnits, setup: true})
}

// ReservePersonRun marks the person busy supervising a run. Double-mode runs
// claim half the person's capacity.
func (l *Ledger) ReservePersonRun(person string, iv entities.Interval, mode entities.HandleMode) {
	l.reservePerson(person, personReservation{interval: iv, units: runUnits(mode)})
}

// PersonFreeAt returns the first instant at or after earliest with no
// reservation of any kind on the person.
func (l *Ledger) PersonFreeAt(person string, earliest time.Time) time.Time {
	cursor := earliest
	for _, res := range l.personBusy[person] {
		if res.interval.Start.After(cursor) {
			break
		}
		if res.interval.End.After(cursor) {
			cursor = res.interval.End
		}
	}
	return cursor
}

// PersonAvailableFor reports whether the person has no reservation at all
// over the interval, as required for setup work. When blocked, the returned
// instant is the earliest end among the overlapping reservations, a safe
// point for the caller to retime from.
func (l *Ledger) PersonAvailableFor(person string, iv entities.Interval) (time.Time, bool) {
	var next time.Time
	blocked := false
	for _, res := range l.personBusy[person] {
		if !res.interval.Overlaps(iv) {
			continue
		}
		if !blocked || res.interval.End.Before(next) {
			next = res.interval.End
		}
		blocked = true
	}
	if blocked {
		return next, false
	}
	return iv.Start, true
}

// PersonAvailableForRun reports whether the person has spare capacity for a
// run over the whole interval. A setup reservation blocks outright; run
// reservations block only where their combined units plus this run's would
// exceed the person's capacity. When blocked, the returned instant is the
// earliest end among the reservations active at the violation.
func (l *Ledger) PersonAvailableForRun(
	person string,
	iv entities.Interval,
	mode entities.HandleMode,
) (time.Time, bool) {
	var overlapping []personReservation
	for _, res := range l.personBusy[person] {
		if res.interval.Overlaps(iv) {
			overlapping = append(overlapping, res)
		}
	}
	if len(overlapping) == 0 {
		return iv.Start, true
	}

	var setupEnd time.Time
	setupBlocked := false
	for _, res := range overlapping {
		if !res.setup {
			continue
		}
		if !setupBlocked || res.interval.End.Before(setupEnd) {
			setupEnd = res.interval.End
		}
		setupBlocked = true
	}
	if setupBlocked {
		return setupEnd, false
	}

	// Unit usage is piecewise constant and only rises at reservation starts,
	// so sampling the interval start plus each later reservation start covers
	// every level the run would see.
	samples := []time.Time{iv.Start}
	for _, res := range overlapping {
		if res.interval.Start.After(iv.Start) {
			samples = append(samples, res.interval.Start)
		}
	}

	required := runUnits(mode)
	for _, sample := range samples {
		used := 0
		var earliestEnd time.Time
		active := false
		for _, res := range overlapping {
			if !res.interval.Contains(sample) {
				continue
			}
			used += res.units
			if !active || res.interval.End.Before(earliestEnd) {
				earliestEnd = res.interval.End
			}
			active = true
		}
		if used+required > personCapacityUnits {
			return earliestEnd, false
		}
	}
	return iv.Start, true
}

// ConcurrentSetups counts reserved setup slots overlapping the interval.
func (l *Ledger) ConcurrentSetups(iv entities.Interval) int {
	count := 0
	for _, slot := range l.setupSlots {
		if slot.Overlaps(iv) {
			count++
		}
	}
	return count
}

// ReserveSetupSlot records a setup interval toward the plant-wide
// concurrent-setup cap.
func (l *Ledger) ReserveSetupSlot(iv entities.Interval) {
	if !iv.End.After(iv.Start) {
		return
	}
	l.setupSlots = append(l.setupSlots, iv)
}

// NextSetupSlotEnd returns the earliest end among setup slots overlapping
// the interval, for advancing past a saturated concurrency window. The
// second result is false when no slot overlaps.
func (l *Ledger) NextSetupSlotEnd(iv entities.Interval) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, slot := range l.setupSlots {
		if !slot.Overlaps(iv) {
			continue
		}
		if !found || slot.End.Before(earliest) {
			earliest = slot.End
			found = true
		}
	}
	return earliest, found
}
