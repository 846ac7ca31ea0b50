package entities

import "time"

// ScheduleRow is one operation-batch-machine assignment, the 19-column
// record consumed by the external report builder and roster overlays.
type ScheduleRow struct {
	ID               string
	PartNumber       PartNumber
	OrderQuantity    int
	Priority         Priority
	BatchID          string
	BatchQuantity    int
	OperationSeq     int
	OperationName    string
	Machine          string
	SetupPerson      string
	ProductionPerson string
	HandleMode       HandleMode
	SetupStart       time.Time
	SetupEnd         time.Time
	RunStart         time.Time
	RunEnd           time.Time
	Timing           string
	DueDate          *time.Time
	MachineStatus    string
}

// PieceTimelineEntry is one contiguous slice of a batch's run phase. A run
// that crosses shift boundaries, holidays or breakdowns produces multiple
// slices; every slice satisfies End > Start.
type PieceTimelineEntry struct {
	PartNumber    PartNumber
	BatchID       string
	Slice         int
	OperationSeq  int
	OperationName string
	Machine       string
	Person        string
	HandleMode    HandleMode
	Start         time.Time
	End           time.Time
	Status        string
}
