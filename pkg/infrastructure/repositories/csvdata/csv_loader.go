package csvdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// Loader handles loading scheduling data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadOperations loads master operation specs from a CSV file. Unrecognized
// handle-mode tokens normalize to single and are reported as warning issues
// alongside the parsed specs.
func (l *Loader) LoadOperations(filename string) ([]*entities.OperationSpec, []entities.QualityIssue, error) {
	records, err := readAll(filename, "operations")
	if err != nil {
		return nil, nil, err
	}

	expectedHeader := []string{
		"part_number", "operation_seq", "operation_name", "setup_time_min",
		"cycle_time_min", "minimum_batch_size", "eligible_machines",
		"fixed_machine", "handle_mode",
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, nil, fmt.Errorf("operations CSV header mismatch. Expected: %v, Got: %v",
			expectedHeader, records[0])
	}

	var specs []*entities.OperationSpec
	var issues []entities.QualityIssue
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, nil, fmt.Errorf("operations CSV row %d: expected %d columns, got %d",
				i+2, len(expectedHeader), len(record))
		}

		spec, issue, err := parseOperation(record)
		if err != nil {
			return nil, nil, fmt.Errorf("operations CSV row %d: %w", i+2, err)
		}
		if issue != nil {
			issues = append(issues, *issue)
		}
		specs = append(specs, spec)
	}

	return specs, issues, nil
}

// LoadOrders loads manufacturing orders from a CSV file
func (l *Loader) LoadOrders(filename string) ([]*entities.Order, error) {
	records, err := readAll(filename, "orders")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{
		"id", "part_number", "operation_seq", "quantity", "priority",
		"due_date", "start_date_time", "batch_mode", "custom_batch_size",
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("orders CSV header mismatch. Expected: %v, Got: %v",
			expectedHeader, records[0])
	}

	var orders []*entities.Order
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("orders CSV row %d: expected %d columns, got %d",
				i+2, len(expectedHeader), len(record))
		}

		order, err := parseOrder(record)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}
	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}
	return true
}

func parseOperation(record []string) (*entities.OperationSpec, *entities.QualityIssue, error) {
	partNumber := entities.PartNumber(strings.TrimSpace(record[0]))

	operationSeq, err := strconv.Atoi(record[1])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid operation_seq: %s", record[1])
	}
	setupTime, err := strconv.Atoi(record[3])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid setup_time_min: %s", record[3])
	}
	cycleTime, err := strconv.Atoi(record[4])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid cycle_time_min: %s", record[4])
	}
	minimumBatch, err := strconv.Atoi(record[5])
	if err != nil {
		return nil, nil, fmt.Errorf("invalid minimum_batch_size: %s", record[5])
	}

	spec, err := entities.NewOperationSpec(
		partNumber, operationSeq, record[2],
		setupTime, cycleTime, minimumBatch,
		entities.ParseMachineList(record[6]),
	)
	if err != nil {
		return nil, nil, err
	}
	spec.FixedMachine = strings.TrimSpace(record[7])

	var issue *entities.QualityIssue
	mode, recognized := entities.ParseHandleMode(record[8])
	if !recognized {
		warning := entities.Warning("Unknown Handle Mode",
			fmt.Sprintf("%s seq %d: handle mode %q normalized to single",
				partNumber, operationSeq, record[8]))
		issue = &warning
	}
	spec.HandleMode = mode

	return spec, issue, nil
}

func parseOrder(record []string) (*entities.Order, error) {
	quantity, err := strconv.Atoi(record[3])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity: %s", record[3])
	}

	order, err := entities.NewOrder(
		strings.TrimSpace(record[0]),
		entities.PartNumber(strings.TrimSpace(record[1])),
		strings.TrimSpace(record[2]),
		quantity,
		entities.ParsePriority(record[4]),
		entities.ParseBatchMode(record[7]),
	)
	if err != nil {
		return nil, err
	}

	if record[5] != "" {
		dueDate, err := parseTimestamp(record[5])
		if err != nil {
			return nil, fmt.Errorf("invalid due_date: %s", record[5])
		}
		order.DueDate = &dueDate
	}
	if record[6] != "" {
		start, err := parseTimestamp(record[6])
		if err != nil {
			return nil, fmt.Errorf("invalid start_date_time: %s", record[6])
		}
		order.StartDateTime = &start
	}
	if record[8] != "" {
		customSize, err := strconv.Atoi(record[8])
		if err != nil {
			return nil, fmt.Errorf("invalid custom_batch_size: %s", record[8])
		}
		order.CustomBatchSize = customSize
	}

	return order, nil
}

// parseTimestamp accepts either a full timestamp or a bare date, both UTC.
func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02 15:04", raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
