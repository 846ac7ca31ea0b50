package memory

import (
	"testing"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

func TestOperationRepository(t *testing.T) {
	repo := NewOperationRepository(3)
	err := repo.LoadOperations([]*entities.OperationSpec{
		{PartNumber: "PN-100", OperationSeq: 2, OperationName: "Drilling",
			CycleTimeMin: 2, EligibleMachines: []string{"DRL-1"}},
		{PartNumber: "PN-100", OperationSeq: 1, OperationName: "Facing",
			CycleTimeMin: 1, EligibleMachines: []string{"VMC-1"}},
		{PartNumber: "PN-200", OperationSeq: 1, OperationName: "Turning",
			CycleTimeMin: 1, EligibleMachines: []string{"VMC-1"}},
	})
	if err != nil {
		t.Fatalf("LoadOperations: %v", err)
	}

	spec, err := repo.GetOperation("PN-100", 2)
	if err != nil {
		t.Fatalf("GetOperation: %v", err)
	}
	if spec.OperationName != "Drilling" {
		t.Errorf("spec = %+v", spec)
	}

	if _, err := repo.GetOperation("PN-999", 1); err == nil {
		t.Error("expected error for unknown part")
	}

	specs, err := repo.GetOperationsForPart("PN-100")
	if err != nil {
		t.Fatalf("GetOperationsForPart: %v", err)
	}
	if len(specs) != 2 || specs[0].OperationSeq != 1 || specs[1].OperationSeq != 2 {
		t.Errorf("specs out of order: %+v", specs)
	}
}

func TestOperationRepositoryReplacesDuplicates(t *testing.T) {
	repo := NewOperationRepository(1)
	repo.AddOperation(entities.OperationSpec{
		PartNumber: "PN-100", OperationSeq: 1, SetupTimeMin: 30,
	})
	repo.AddOperation(entities.OperationSpec{
		PartNumber: "PN-100", OperationSeq: 1, SetupTimeMin: 45,
	})

	spec, err := repo.GetOperation("PN-100", 1)
	if err != nil {
		t.Fatalf("GetOperation: %v", err)
	}
	if spec.SetupTimeMin != 45 {
		t.Errorf("setup = %d, want later spec to replace earlier", spec.SetupTimeMin)
	}

	specs, _ := repo.GetOperationsForPart("PN-100")
	if len(specs) != 1 {
		t.Errorf("specs = %d, want 1", len(specs))
	}
}
