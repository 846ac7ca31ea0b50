package repositories

import "github.com/shopsched/shopsched/pkg/domain/entities"

// OperationRepository provides access to master operation data, keyed by
// (part number, operation sequence)
type OperationRepository interface {
	GetOperation(partNumber entities.PartNumber, operationSeq int) (*entities.OperationSpec, error)
	GetOperationsForPart(partNumber entities.PartNumber) ([]*entities.OperationSpec, error)
	LoadOperations(specs []*entities.OperationSpec) error
}
