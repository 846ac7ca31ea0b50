package memory

import (
	"fmt"
	"sort"

	"github.com/shopsched/shopsched/pkg/domain/entities"
	"github.com/shopsched/shopsched/pkg/domain/repositories"
)

type operationKey struct {
	partNumber   entities.PartNumber
	operationSeq int
}

// OperationRepository provides in-memory master operation storage
type OperationRepository struct {
	specs    []entities.OperationSpec
	specsMap map[operationKey]int
}

// NewOperationRepository creates a new in-memory operation repository
func NewOperationRepository(expectedSpecs int) *OperationRepository {
	return &OperationRepository{
		specs:    make([]entities.OperationSpec, 0, expectedSpecs),
		specsMap: make(map[operationKey]int, expectedSpecs),
	}
}

// Verify interface compliance
var _ repositories.OperationRepository = (*OperationRepository)(nil)

// LoadOperations loads operation specs into the repository
func (r *OperationRepository) LoadOperations(specs []*entities.OperationSpec) error {
	for _, spec := range specs {
		r.AddOperation(*spec)
	}
	return nil
}

// AddOperation adds an operation spec, replacing any previous spec for the
// same part and sequence
func (r *OperationRepository) AddOperation(spec entities.OperationSpec) {
	key := operationKey{spec.PartNumber, spec.OperationSeq}
	if index, exists := r.specsMap[key]; exists {
		r.specs[index] = spec
		return
	}
	r.specsMap[key] = len(r.specs)
	r.specs = append(r.specs, spec)
}

// GetOperation returns the master spec for a part and operation sequence
func (r *OperationRepository) GetOperation(
	partNumber entities.PartNumber,
	operationSeq int,
) (*entities.OperationSpec, error) {
	index, exists := r.specsMap[operationKey{partNumber, operationSeq}]
	if !exists {
		return nil, fmt.Errorf("operation not found: %s seq %d", partNumber, operationSeq)
	}
	return &r.specs[index], nil
}

// GetOperationsForPart returns all operations of a part in ascending
// sequence order
func (r *OperationRepository) GetOperationsForPart(
	partNumber entities.PartNumber,
) ([]*entities.OperationSpec, error) {
	var specs []*entities.OperationSpec
	for i := range r.specs {
		if r.specs[i].PartNumber == partNumber {
			specs = append(specs, &r.specs[i])
		}
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].OperationSeq < specs[j].OperationSeq
	})
	return specs, nil
}
