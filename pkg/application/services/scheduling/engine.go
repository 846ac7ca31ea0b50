package scheduling

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopsched/shopsched/pkg/application/dto"
	"github.com/shopsched/shopsched/pkg/application/services/batching"
	"github.com/shopsched/shopsched/pkg/application/services/resources"
	"github.com/shopsched/shopsched/pkg/application/services/timing"
	"github.com/shopsched/shopsched/pkg/domain/entities"
	"github.com/shopsched/shopsched/pkg/domain/repositories"
)

// Fallback operation parameters used when master data is missing but the
// order carries its own override for the sequence.
const (
	defaultSetupTimeMin     = 30
	defaultCycleTimeMin     = 2
	defaultMinimumBatchSize = 100
)

// maxRetimes bounds the setup placement loop when personnel availability or
// the concurrent-setup cap keeps pushing the candidate start forward.
const maxRetimes = 1000

// EngineConfig holds tunable parameters for the scheduling engine
type EngineConfig struct {
	MaxConcurrentSetups int
	HorizonDays         int
}

// DefaultEngineConfig returns the default engine configuration
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxConcurrentSetups: 2,
		HorizonDays:         timing.DefaultHorizonDays,
	}
}

// Engine is the scheduling orchestrator: it dispatches orders by priority,
// walks operations in sequence and batches in splitter order, and owns the
// resource ledger that couples assignments across the run.
type Engine struct {
	operations repositories.OperationRepository
	config     EngineConfig
}

// NewEngine creates an engine with default configuration
func NewEngine(operations repositories.OperationRepository) *Engine {
	return NewEngineWithConfig(operations, DefaultEngineConfig())
}

// NewEngineWithConfig creates an engine with custom configuration.
// Zero-valued fields fall back to their defaults.
func NewEngineWithConfig(operations repositories.OperationRepository, config EngineConfig) *Engine {
	defaults := DefaultEngineConfig()
	if config.MaxConcurrentSetups <= 0 {
		config.MaxConcurrentSetups = defaults.MaxConcurrentSetups
	}
	if config.HorizonDays <= 0 {
		config.HorizonDays = defaults.HorizonDays
	}
	return &Engine{operations: operations, config: config}
}

// runState carries the per-run collaborators the orchestrator threads
// through order, operation and batch scheduling.
type runState struct {
	settings     resolvedSettings
	calendar     *timing.Calendar
	assigner     *resources.Assigner
	ledger       *resources.Ledger
	result       *dto.ScheduleResult
	batchCounter int
}

// Run executes one deterministic scheduling pass over the orders. The
// context is checked at order-loop granularity only; the engine performs no
// I/O and never blocks. Infeasible batch-operations become quality issues,
// not errors, so a partial schedule is always produced.
func (e *Engine) Run(
	ctx context.Context,
	orders []*entities.Order,
	settings GlobalSettings,
) (*dto.ScheduleResult, error) {
	result := dto.NewScheduleResult()
	result.Summary.OrdersRequested = len(orders)

	resolved := resolveSettings(settings)
	for _, issue := range resolved.issues {
		result.AddIssue(issue)
	}

	calendar := timing.NewCalendar(settings.Holidays, settings.Breakdowns)
	calendar.HorizonDays = e.config.HorizonDays

	st := &runState{
		settings: resolved,
		calendar: calendar,
		assigner: resources.NewAssigner(settings.Profiles),
		ledger:   resources.NewLedger(),
		result:   result,
	}

	if len(orders) > 0 {
		if !st.assigner.HasSetupCandidates() {
			result.AddIssue(entities.Warning(RuleNoEligiblePersonnel,
				"roster has no setup-eligible personnel; no setup can be staffed"))
		}
		if !st.assigner.HasProductionCandidates() {
			result.AddIssue(entities.Warning(RuleNoEligiblePersonnel,
				"roster has no production-eligible personnel; no run can be staffed"))
		}
	}

	for _, order := range dispatchOrder(orders) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scheduling run interrupted: %w", err)
		}
		if e.scheduleOrder(order, st) {
			result.Summary.OrdersScheduled++
		}
	}

	return result, nil
}

// dispatchOrder sorts orders for dispatch: priority first (Urgent before
// Low), then due date (earlier first, dated before undated), then order id.
// The sort is stable so equal orders keep their input position.
func dispatchOrder(orders []*entities.Order) []*entities.Order {
	dispatched := make([]*entities.Order, len(orders))
	copy(dispatched, orders)
	sort.SliceStable(dispatched, func(i, j int) bool {
		a, b := dispatched[i], dispatched[j]
		if a.Priority.DispatchRank() != b.Priority.DispatchRank() {
			return a.Priority.DispatchRank() < b.Priority.DispatchRank()
		}
		switch {
		case a.DueDate != nil && b.DueDate != nil:
			if !a.DueDate.Equal(*b.DueDate) {
				return a.DueDate.Before(*b.DueDate)
			}
		case a.DueDate != nil:
			return true
		case b.DueDate != nil:
			return false
		}
		return a.ID < b.ID
	})
	return dispatched
}

// scheduleOrder plans one order end to end: resolve its operation specs,
// split its quantity into batches, then schedule every operation-batch pair
// in sequence order. Returns true when at least one row was emitted.
func (e *Engine) scheduleOrder(order *entities.Order, st *runState) bool {
	start := st.settings.start
	if order.StartDateTime != nil {
		start = *order.StartDateTime
	}

	specs := e.resolveOperations(order, st.result)
	if len(specs) == 0 {
		return false
	}

	quantities := batching.Split(
		order.OrderQuantity,
		specs[0].MinimumBatchSize,
		order.Priority,
		order.BatchMode,
		order.CustomBatchSize,
		specs,
	)

	batches := make([]entities.Batch, len(quantities))
	for i, quantity := range quantities {
		st.batchCounter++
		batches[i] = entities.Batch{
			ID:       entities.BatchID(st.batchCounter),
			Quantity: quantity,
			Index:    i,
		}
	}

	if check := batching.Validate(batches, order.OrderQuantity); !check.IsValid() {
		st.result.AddIssue(entities.Critical(RuleBatchValidation,
			fmt.Sprintf("order %s: %s", order.ID, strings.Join(check.Errors, "; "))))
		return false
	}
	st.result.Summary.BatchesPlanned += len(batches)

	// Each batch flows through the operations independently; a batch's next
	// operation starts no earlier than its previous one finished.
	ready := make([]time.Time, len(batches))
	for i := range ready {
		ready[i] = start
	}

	emitted := false
	for _, spec := range specs {
		for i := range batches {
			end, ok := e.scheduleBatch(order, spec, batches[i], ready[i], st)
			if !ok {
				continue
			}
			ready[i] = end
			emitted = true
		}
	}
	return emitted
}

// resolveOperations builds the effective operation specs for the order in
// ascending sequence order, applying per-order overrides field by field.
// Missing master data falls back to the order's override over defaults, or
// skips the sequence with a warning when no override exists either.
func (e *Engine) resolveOperations(order *entities.Order, result *dto.ScheduleResult) []*entities.OperationSpec {
	overrides := make(map[int]*entities.OperationOverride, len(order.Overrides))
	for i := range order.Overrides {
		overrides[order.Overrides[i].OperationSeq] = &order.Overrides[i]
	}

	seqs := order.OperationSeqs()
	sort.Ints(seqs)

	var specs []*entities.OperationSpec
	for _, seq := range seqs {
		master, err := e.operations.GetOperation(order.PartNumber, seq)
		override := overrides[seq]

		switch {
		case err == nil && override != nil:
			merged := override.Apply(*master)
			specs = append(specs, &merged)
		case err == nil:
			specs = append(specs, master)
		case override != nil:
			base := entities.OperationSpec{
				PartNumber:       order.PartNumber,
				OperationSeq:     seq,
				OperationName:    fmt.Sprintf("Operation %d", seq),
				SetupTimeMin:     defaultSetupTimeMin,
				CycleTimeMin:     defaultCycleTimeMin,
				MinimumBatchSize: defaultMinimumBatchSize,
			}
			merged := override.Apply(base)
			result.AddIssue(entities.Warning(RuleMissingMasterOperation,
				fmt.Sprintf("order %s: no master data for %s seq %d, using order override over defaults",
					order.ID, order.PartNumber, seq)))
			specs = append(specs, &merged)
		default:
			result.AddIssue(entities.Warning(RuleMissingMasterOperation,
				fmt.Sprintf("order %s: no master data for %s seq %d, skipping operation",
					order.ID, order.PartNumber, seq)))
		}
	}
	return specs
}

// scheduleBatch plans one operation-batch pair: machine selection, setup
// placement under the concurrent-setup cap, run timing and personnel
// reservation. On success it returns the run end for chaining the batch's
// next operation; on failure it records a critical issue and reserves
// nothing.
func (e *Engine) scheduleBatch(
	order *entities.Order,
	spec *entities.OperationSpec,
	batch entities.Batch,
	ready time.Time,
	st *runState,
) (time.Time, bool) {
	machine, err := resources.SelectMachine(spec, st.ledger)
	if err != nil {
		st.result.AddIssue(entities.Critical(RuleNoAvailableMachine,
			fmt.Sprintf("order %s batch %s seq %d: %v", order.ID, batch.ID, spec.OperationSeq, err)))
		return time.Time{}, false
	}

	earliest := st.ledger.MachineFreeAt(machine, ready)
	machineStatus := "Available"
	if earliest.After(ready) {
		machineStatus = fmt.Sprintf("Busy until %s", earliest.Format("2006-01-02 15:04"))
	}

	setupRes, setupPerson, ok := e.placeSetup(order, spec, batch, machine, earliest, st)
	if !ok {
		return time.Time{}, false
	}

	runRes, productionPerson, ok := e.placeRun(order, spec, batch, machine, setupRes.End, st)
	if !ok {
		return time.Time{}, false
	}

	setupInterval := entities.Interval{Start: setupRes.Start, End: setupRes.End}
	runInterval := entities.Interval{Start: runRes.Start, End: runRes.End}

	st.ledger.ReserveMachine(machine, entities.Interval{Start: setupRes.Start, End: runRes.End})
	st.ledger.ReserveSetupSlot(setupInterval)
	st.ledger.ReservePersonSetup(setupPerson.UID, setupInterval)
	st.ledger.ReservePersonRun(productionPerson.UID, runInterval, spec.HandleMode)

	st.result.AddRow(entities.ScheduleRow{
		ID:               order.ID,
		PartNumber:       order.PartNumber,
		OrderQuantity:    order.OrderQuantity,
		Priority:         order.Priority,
		BatchID:          batch.ID,
		BatchQuantity:    batch.Quantity,
		OperationSeq:     spec.OperationSeq,
		OperationName:    spec.OperationName,
		Machine:          machine,
		SetupPerson:      setupPerson.Name,
		ProductionPerson: productionPerson.Name,
		HandleMode:       spec.HandleMode,
		SetupStart:       setupRes.Start,
		SetupEnd:         setupRes.End,
		RunStart:         runRes.Start,
		RunEnd:           runRes.End,
		Timing: timing.FormatTiming(setupRes.Start, runRes.End,
			setupRes.PausedMinutes+runRes.PausedMinutes),
		DueDate:       order.DueDate,
		MachineStatus: machineStatus,
	})

	for sliceIndex, segment := range runRes.Segments {
		st.result.PieceTimeline = append(st.result.PieceTimeline, entities.PieceTimelineEntry{
			PartNumber:    order.PartNumber,
			BatchID:       batch.ID,
			Slice:         sliceIndex + 1,
			OperationSeq:  spec.OperationSeq,
			OperationName: spec.OperationName,
			Machine:       machine,
			Person:        productionPerson.Name,
			HandleMode:    spec.HandleMode,
			Start:         segment.Start,
			End:           segment.End,
			Status:        "Scheduled",
		})
	}

	return runRes.End, true
}

// placeSetup finds the earliest setup placement that has a free setup person
// and respects the concurrent-setup cap, retiming forward as needed.
func (e *Engine) placeSetup(
	order *entities.Order,
	spec *entities.OperationSpec,
	batch entities.Batch,
	machine string,
	earliest time.Time,
	st *runState,
) (timing.Result, entities.PersonnelProfile, bool) {
	attempt := earliest
	for tries := 0; tries < maxRetimes; tries++ {
		res, err := st.calendar.Schedule(spec.SetupTimeMin, attempt, machine, st.settings.setupWindows)
		if err != nil {
			st.result.AddIssue(entities.Critical(RuleTimingHorizonExceeded,
				fmt.Sprintf("order %s batch %s seq %d setup on %s: %v",
					order.ID, batch.ID, spec.OperationSeq, machine, err)))
			return timing.Result{}, entities.PersonnelProfile{}, false
		}

		interval := entities.Interval{Start: res.Start, End: res.End}
		if spec.SetupTimeMin > 0 &&
			st.ledger.ConcurrentSetups(interval) >= e.config.MaxConcurrentSetups {
			if end, found := st.ledger.NextSetupSlotEnd(interval); found {
				attempt = end
				continue
			}
		}

		person, availableAt, err := st.assigner.PickSetupPerson(st.ledger, interval)
		if err != nil {
			st.result.AddIssue(entities.Critical(RuleNoEligiblePersonnel,
				fmt.Sprintf("order %s batch %s seq %d: no setup-eligible person",
					order.ID, batch.ID, spec.OperationSeq)))
			return timing.Result{}, entities.PersonnelProfile{}, false
		}
		if availableAt.After(res.Start) {
			attempt = availableAt
			continue
		}

		return res, person, true
	}

	st.result.AddIssue(entities.Critical(RuleTimingHorizonExceeded,
		fmt.Sprintf("order %s batch %s seq %d: setup could not be placed on %s",
			order.ID, batch.ID, spec.OperationSeq, machine)))
	return timing.Result{}, entities.PersonnelProfile{}, false
}

// placeRun times the batch's run after its setup and finds the production
// person to supervise it, retiming the run forward whenever every eligible
// person's capacity is spoken for at the candidate start. A single-mode run
// needs a person's whole capacity; a double-mode run needs half.
func (e *Engine) placeRun(
	order *entities.Order,
	spec *entities.OperationSpec,
	batch entities.Batch,
	machine string,
	earliest time.Time,
	st *runState,
) (timing.Result, entities.PersonnelProfile, bool) {
	runMinutes := spec.CycleTimeMin * batch.Quantity
	attempt := earliest
	for tries := 0; tries < maxRetimes; tries++ {
		res, err := st.calendar.Schedule(runMinutes, attempt, machine, st.settings.productionWindows)
		if err != nil {
			st.result.AddIssue(entities.Critical(RuleTimingHorizonExceeded,
				fmt.Sprintf("order %s batch %s seq %d run on %s: %v",
					order.ID, batch.ID, spec.OperationSeq, machine, err)))
			return timing.Result{}, entities.PersonnelProfile{}, false
		}

		interval := entities.Interval{Start: res.Start, End: res.End}
		person, availableAt, err := st.assigner.PickProductionPerson(st.ledger, interval, spec.HandleMode)
		if err != nil {
			st.result.AddIssue(entities.Critical(RuleNoEligiblePersonnel,
				fmt.Sprintf("order %s batch %s seq %d: no production-eligible person",
					order.ID, batch.ID, spec.OperationSeq)))
			return timing.Result{}, entities.PersonnelProfile{}, false
		}
		if availableAt.After(res.Start) {
			attempt = availableAt
			continue
		}

		return res, person, true
	}

	st.result.AddIssue(entities.Critical(RuleTimingHorizonExceeded,
		fmt.Sprintf("order %s batch %s seq %d: run could not be placed on %s",
			order.ID, batch.ID, spec.OperationSeq, machine)))
	return timing.Result{}, entities.PersonnelProfile{}, false
}
