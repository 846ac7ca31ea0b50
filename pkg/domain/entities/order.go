package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PartNumber represents a unique part identifier
type PartNumber string

// Priority represents the dispatch priority of an order
type Priority int

const (
	Low Priority = iota
	Normal
	High
	Urgent
)

// String method for Priority enum
func (p Priority) String() string {
	switch p {
	case Low:
		return "Low"
	case Normal:
		return "Normal"
	case High:
		return "High"
	case Urgent:
		return "Urgent"
	default:
		return "Normal"
	}
}

// ParsePriority normalizes a priority token. Unknown or empty tokens map to Normal.
func ParsePriority(raw string) Priority {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return Low
	case "high":
		return High
	case "urgent":
		return Urgent
	default:
		return Normal
	}
}

// DispatchRank returns the sort rank used for order dispatch.
// Lower rank dispatches first: Urgent < High < Normal < Low.
func (p Priority) DispatchRank() int {
	switch p {
	case Urgent:
		return 0
	case High:
		return 1
	case Normal:
		return 2
	default:
		return 3
	}
}

// IsExpedited reports whether the priority asks for extra parallelism
// during batch splitting.
func (p Priority) IsExpedited() bool {
	return p == High || p == Urgent
}

// BatchMode represents the batch decomposition policy of an order
type BatchMode int

const (
	AutoSplit BatchMode = iota
	SingleBatch
	CustomBatchSize
)

// String method for BatchMode enum
func (m BatchMode) String() string {
	switch m {
	case SingleBatch:
		return "single-batch"
	case CustomBatchSize:
		return "custom-batch-size"
	default:
		return "auto-split"
	}
}

// ParseBatchMode normalizes a batch mode token. Unknown tokens map to AutoSplit.
func ParseBatchMode(raw string) BatchMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "single-batch":
		return SingleBatch
	case "custom-batch-size":
		return CustomBatchSize
	default:
		return AutoSplit
	}
}

// Order represents one finite-quantity manufacturing order to be scheduled
type Order struct {
	ID              string
	PartNumber      PartNumber
	OperationSeqRef string
	OrderQuantity   int
	Priority        Priority
	DueDate         *time.Time
	StartDateTime   *time.Time
	BatchMode       BatchMode
	CustomBatchSize int
	Overrides       []OperationOverride
}

// NewOrder creates a validated Order
func NewOrder(
	id string,
	partNumber PartNumber,
	operationSeqRef string,
	orderQuantity int,
	priority Priority,
	batchMode BatchMode,
) (*Order, error) {
	if id == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if string(partNumber) == "" {
		return nil, fmt.Errorf("part number cannot be empty")
	}
	if orderQuantity <= 0 {
		return nil, fmt.Errorf("order quantity must be positive, got %d", orderQuantity)
	}

	return &Order{
		ID:              id,
		PartNumber:      partNumber,
		OperationSeqRef: operationSeqRef,
		OrderQuantity:   orderQuantity,
		Priority:        priority,
		BatchMode:       batchMode,
	}, nil
}

// OperationSeqs parses the order's operation sequence reference, a
// comma-separated list of 1-based sequence numbers ("1,2,3"). Tokens are
// stripped of non-digit characters and deduplicated preserving first
// occurrence. An empty or unparsable reference defaults to sequence 1.
func (o *Order) OperationSeqs() []int {
	seen := make(map[int]bool)
	var seqs []int
	for _, token := range strings.Split(o.OperationSeqRef, ",") {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, token)
		value, err := strconv.Atoi(digits)
		if err != nil || value <= 0 || seen[value] {
			continue
		}
		seen[value] = true
		seqs = append(seqs, value)
	}
	if len(seqs) == 0 {
		return []int{1}
	}
	return seqs
}
