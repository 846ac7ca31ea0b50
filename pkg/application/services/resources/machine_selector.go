package resources

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// ErrNoAvailableMachine means the operation has no machine it may run on,
// either because its eligible list is empty or because its fixed machine is
// not in the eligible set.
var ErrNoAvailableMachine = errors.New("no available machine")

// SelectMachine picks the least-loaded machine for the operation: the
// eligible machine with the fewest reserved minutes on the ledger, ties
// broken by machine id. A fixed machine short-circuits the choice but must
// still be eligible.
func SelectMachine(spec *entities.OperationSpec, ledger *Ledger) (string, error) {
	candidates, ok := spec.CandidateMachines()
	if !ok {
		return "", fmt.Errorf(
			"%w: fixed machine %s is not in the eligible set for %s seq %d",
			ErrNoAvailableMachine, spec.FixedMachine, spec.PartNumber, spec.OperationSeq)
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s seq %d lists no eligible machines",
			ErrNoAvailableMachine, spec.PartNumber, spec.OperationSeq)
	}

	sorted := make([]string, len(candidates))
	copy(sorted, candidates)
	sort.Strings(sorted)

	best := sorted[0]
	bestMinutes := ledger.MachineBusyMinutes(best)
	for _, machine := range sorted[1:] {
		if minutes := ledger.MachineBusyMinutes(machine); minutes < bestMinutes {
			best = machine
			bestMinutes = minutes
		}
	}
	return best, nil
}
