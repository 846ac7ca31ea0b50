package entities

import (
	"fmt"
	"strings"
)

// HandleMode represents how many units an operator tends per cycle tick
type HandleMode int

const (
	HandleSingle HandleMode = iota
	HandleDouble
)

// String method for HandleMode enum
func (h HandleMode) String() string {
	if h == HandleDouble {
		return "double"
	}
	return "single"
}

// UnitsPerTick returns the number of units processed per cycle tick.
func (h HandleMode) UnitsPerTick() int {
	if h == HandleDouble {
		return 2
	}
	return 1
}

// ParseHandleMode normalizes a handle mode token. Any token containing
// "double" maps to HandleDouble; everything else normalizes to HandleSingle.
// The second return reports whether the token was recognized, so callers can
// surface a warning for garbage input without failing the parse.
func ParseHandleMode(raw string) (HandleMode, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case token == "" || token == "single":
		return HandleSingle, true
	case strings.Contains(token, "double"):
		return HandleDouble, true
	default:
		return HandleSingle, false
	}
}

// OperationSpec describes one step of a part's routing: its setup and cycle
// times, the machines that may run it, and how units are handled.
type OperationSpec struct {
	PartNumber       PartNumber
	OperationSeq     int
	OperationName    string
	SetupTimeMin     int
	CycleTimeMin     int
	MinimumBatchSize int
	EligibleMachines []string
	FixedMachine     string
	HandleMode       HandleMode
}

// NewOperationSpec creates a validated OperationSpec
func NewOperationSpec(
	partNumber PartNumber,
	operationSeq int,
	operationName string,
	setupTimeMin, cycleTimeMin, minimumBatchSize int,
	eligibleMachines []string,
) (*OperationSpec, error) {
	if string(partNumber) == "" {
		return nil, fmt.Errorf("part number cannot be empty")
	}
	if operationSeq <= 0 {
		return nil, fmt.Errorf("operation sequence must be positive, got %d", operationSeq)
	}
	if setupTimeMin < 0 {
		return nil, fmt.Errorf("setup time cannot be negative, got %d", setupTimeMin)
	}
	if cycleTimeMin <= 0 {
		return nil, fmt.Errorf("cycle time must be positive, got %d", cycleTimeMin)
	}
	if minimumBatchSize <= 0 {
		return nil, fmt.Errorf("minimum batch size must be positive, got %d", minimumBatchSize)
	}
	if len(eligibleMachines) == 0 {
		return nil, fmt.Errorf("operation needs at least one eligible machine")
	}

	return &OperationSpec{
		PartNumber:       partNumber,
		OperationSeq:     operationSeq,
		OperationName:    operationName,
		SetupTimeMin:     setupTimeMin,
		CycleTimeMin:     cycleTimeMin,
		MinimumBatchSize: minimumBatchSize,
		EligibleMachines: eligibleMachines,
	}, nil
}

// CandidateMachines returns the machines the operation may run on, narrowed
// to the fixed machine when one is set. The second return reports whether the
// fixed machine is actually eligible; a false value means no machine can
// serve the operation.
func (s *OperationSpec) CandidateMachines() ([]string, bool) {
	if s.FixedMachine == "" {
		return dedupeMachines(s.EligibleMachines), true
	}
	for _, machine := range s.EligibleMachines {
		if machine == s.FixedMachine {
			return []string{s.FixedMachine}, true
		}
	}
	return nil, false
}

// ParseMachineList splits a comma-separated machine list, trimming blanks.
func ParseMachineList(raw string) []string {
	var machines []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			machines = append(machines, token)
		}
	}
	return dedupeMachines(machines)
}

func dedupeMachines(machines []string) []string {
	seen := make(map[string]bool, len(machines))
	var ordered []string
	for _, machine := range machines {
		machine = strings.TrimSpace(machine)
		if machine == "" || seen[machine] {
			continue
		}
		seen[machine] = true
		ordered = append(ordered, machine)
	}
	return ordered
}

// OperationOverride carries per-order replacements for a master operation
// spec. Nil fields keep the master value; set fields replace it.
type OperationOverride struct {
	OperationSeq     int
	OperationName    *string
	SetupTimeMin     *int
	CycleTimeMin     *int
	MinimumBatchSize *int
	EligibleMachines []string
	FixedMachine     *string
	HandleMode       *HandleMode
}

// Apply returns a copy of the master spec with the override's set fields
// replacing the master's, field by field.
func (ov *OperationOverride) Apply(master OperationSpec) OperationSpec {
	merged := master
	merged.OperationSeq = ov.OperationSeq
	if ov.OperationName != nil {
		merged.OperationName = *ov.OperationName
	}
	if ov.SetupTimeMin != nil {
		merged.SetupTimeMin = *ov.SetupTimeMin
	}
	if ov.CycleTimeMin != nil {
		merged.CycleTimeMin = *ov.CycleTimeMin
	}
	if ov.MinimumBatchSize != nil {
		merged.MinimumBatchSize = *ov.MinimumBatchSize
	}
	if len(ov.EligibleMachines) > 0 {
		merged.EligibleMachines = dedupeMachines(ov.EligibleMachines)
	}
	if ov.FixedMachine != nil {
		merged.FixedMachine = *ov.FixedMachine
		if *ov.FixedMachine != "" && len(ov.EligibleMachines) == 0 {
			// A fixed machine on an override implies eligibility for it.
			merged.EligibleMachines = []string{*ov.FixedMachine}
		}
	}
	if ov.HandleMode != nil {
		merged.HandleMode = *ov.HandleMode
	}
	return merged
}
