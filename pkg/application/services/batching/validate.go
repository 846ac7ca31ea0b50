package batching

import (
	"fmt"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// ValidationResult lists the structural problems found in a batch set.
// Validation is a pure check: the caller decides whether to log or report.
type ValidationResult struct {
	Errors []string
}

// IsValid reports whether the batch set passed every structural check.
func (v ValidationResult) IsValid() bool {
	return len(v.Errors) == 0
}

// Validate checks a batch set against its order quantity: quantities must
// sum to the total, no batch may be empty, and batch ids must be unique.
func Validate(batches []entities.Batch, totalQuantity int) ValidationResult {
	var result ValidationResult

	if len(batches) == 0 {
		result.Errors = append(result.Errors, "no batches created")
		return result
	}

	actualTotal := 0
	seenIDs := make(map[string]bool, len(batches))
	for _, batch := range batches {
		actualTotal += batch.Quantity
		if batch.Quantity <= 0 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("empty batch %s", batch.ID))
		}
		if seenIDs[batch.ID] {
			result.Errors = append(result.Errors,
				fmt.Sprintf("duplicate batch id %s", batch.ID))
		}
		seenIDs[batch.ID] = true
	}

	if actualTotal != totalQuantity {
		result.Errors = append(result.Errors,
			fmt.Sprintf("quantity mismatch: expected %d, got %d", totalQuantity, actualTotal))
	}

	return result
}
