package batching

import (
	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// DefaultCustomBatchSize applies when custom-batch-size mode is selected
// without a usable size.
const DefaultCustomBatchSize = 300

// Auto-split quantity tiers and chunk targets.
const (
	singleBatchLimit   = 250
	twoBatchLimit      = 500
	threeBatchLimit    = 1000
	normalChunkSize    = 500
	expeditedChunkSize = 334
)

// slowCycleThresholdMin and slowCycleMinBatch guard slow bottleneck
// operations against excessive splitting: when the slowest operation's cycle
// time exceeds the threshold, the effective minimum batch size is raised.
const (
	slowCycleThresholdMin = 10
	slowCycleMinBatch     = 50
)

// Split decomposes an order's total quantity into batches under the
// selected batch mode. Batch ids are not assigned here; the orchestrator
// numbers batches across the whole run. The returned quantities always sum
// to totalQuantity and every batch is non-empty.
func Split(
	totalQuantity int,
	minBatchSize int,
	priority entities.Priority,
	mode entities.BatchMode,
	customBatchSize int,
	operations []*entities.OperationSpec,
) []int {
	if totalQuantity <= 0 {
		return nil
	}

	effectiveMin := effectiveMinBatchSize(minBatchSize, operations)

	switch mode {
	case entities.SingleBatch:
		return []int{totalQuantity}
	case entities.CustomBatchSize:
		return splitCustom(totalQuantity, customBatchSize)
	default:
		return splitAuto(totalQuantity, effectiveMin, priority)
	}
}

// effectiveMinBatchSize raises the minimum batch size when the bottleneck
// operation (largest cycle time) is slow.
func effectiveMinBatchSize(minBatchSize int, operations []*entities.OperationSpec) int {
	if minBatchSize < 1 {
		minBatchSize = 1
	}
	var bottleneck *entities.OperationSpec
	for _, op := range operations {
		if bottleneck == nil || op.CycleTimeMin > bottleneck.CycleTimeMin {
			bottleneck = op
		}
	}
	if bottleneck != nil && bottleneck.CycleTimeMin > slowCycleThresholdMin &&
		minBatchSize < slowCycleMinBatch {
		return slowCycleMinBatch
	}
	return minBatchSize
}

// splitCustom carves off chunks of the custom size until the quantity is
// exhausted; the remainder forms the final, smallest batch.
func splitCustom(totalQuantity, customBatchSize int) []int {
	if customBatchSize <= 0 {
		customBatchSize = DefaultCustomBatchSize
	}
	var quantities []int
	remaining := totalQuantity
	for remaining > 0 {
		batchQty := customBatchSize
		if remaining < batchQty {
			batchQty = remaining
		}
		quantities = append(quantities, batchQty)
		remaining -= batchQty
	}
	return quantities
}

// splitAuto applies the quantity-tiered balanced splitting rules.
func splitAuto(totalQuantity, effectiveMin int, priority entities.Priority) []int {
	var numBatches int

	switch {
	case totalQuantity <= singleBatchLimit:
		return []int{totalQuantity}

	case totalQuantity <= twoBatchLimit:
		numBatches = 2

	case totalQuantity <= threeBatchLimit:
		if priority.IsExpedited() {
			// Expedited orders prefer three lanes for parallelism.
			numBatches = 3
		} else if totalQuantity%3 < totalQuantity%2 {
			// Three divides more evenly than two.
			numBatches = 3
		} else {
			numBatches = 2
		}

	default:
		chunk := normalChunkSize
		if priority.IsExpedited() {
			chunk = expeditedChunkSize
		}
		numBatches = (totalQuantity + chunk - 1) / chunk
	}

	// Never split below the effective minimum batch size.
	for numBatches > 1 && totalQuantity/numBatches < effectiveMin {
		numBatches--
	}
	if numBatches <= 1 {
		return []int{totalQuantity}
	}

	if totalQuantity <= twoBatchLimit {
		// Two batches: ceil-half first, remainder second.
		first := (totalQuantity + 1) / 2
		return []int{first, totalQuantity - first}
	}

	base := totalQuantity / numBatches
	remainder := totalQuantity % numBatches
	quantities := make([]int, numBatches)
	for i := range quantities {
		quantities[i] = base
		if i < remainder {
			quantities[i]++
		}
	}
	return quantities
}
