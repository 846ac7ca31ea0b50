package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopsched/shopsched/pkg/application/dto"
	"github.com/shopsched/shopsched/pkg/application/services/reporting"
	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// OutputConfig controls how results are rendered
type OutputConfig struct {
	OutputDir  string
	Format     string
	Verbose    bool
	InputFiles map[string]string
	RunTime    time.Duration
}

// generateOutput generates formatted output based on configuration
func generateOutput(
	result *dto.ScheduleResult,
	utilization reporting.UtilizationReport,
	shifts []EmployeeShift,
	config OutputConfig,
) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, utilization, shifts, config)
	case "json":
		return generateJSONOutput(result, utilization, shifts, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput generates human-readable text output
func generateTextOutput(
	result *dto.ScheduleResult,
	utilization reporting.UtilizationReport,
	shifts []EmployeeShift,
	config OutputConfig,
) error {
	var output string

	// Header
	output += "═══════════════════════════════════════════════════════════════\n"
	output += "                    SHOP SCHEDULING RESULTS\n"
	output += "═══════════════════════════════════════════════════════════════\n\n"

	// Summary statistics
	output += "📊 SUMMARY\n"
	output += fmt.Sprintf("  Run ID: %s\n", result.RunID)
	output += fmt.Sprintf("  Run Time: %v\n", config.RunTime)
	output += fmt.Sprintf("  Orders Requested: %d\n", result.Summary.OrdersRequested)
	output += fmt.Sprintf("  Orders Scheduled: %d\n", result.Summary.OrdersScheduled)
	output += fmt.Sprintf("  Batches Planned: %d\n", result.Summary.BatchesPlanned)
	output += fmt.Sprintf("  Schedule Rows: %d\n", result.Summary.RowsEmitted)
	output += fmt.Sprintf("  Quality Issues: %d warnings, %d critical\n",
		result.Summary.Warnings, result.Summary.Criticals)
	if !result.Summary.ScheduleStart.IsZero() {
		output += fmt.Sprintf("  Schedule Span: %s to %s\n",
			result.Summary.ScheduleStart.Format("2006-01-02 15:04"),
			result.Summary.ScheduleEnd.Format("2006-01-02 15:04"))
	}
	output += "\n"

	// Schedule rows
	if len(result.Rows) > 0 {
		output += "🗓  SCHEDULE\n"
		output += "────────────────────────────────────────────────────────────────\n"

		for _, row := range result.Rows {
			output += fmt.Sprintf("Order: %-12s Part: %-15s Batch: %s (qty %d)\n",
				row.ID, row.PartNumber, row.BatchID, row.BatchQuantity)
			output += fmt.Sprintf("  Op %d %-20s Machine: %-10s Priority: %s\n",
				row.OperationSeq, row.OperationName, row.Machine, row.Priority)
			output += fmt.Sprintf("  Setup: %s - %s (%s)\n",
				row.SetupStart.Format("2006-01-02 15:04"),
				row.SetupEnd.Format("15:04"),
				row.SetupPerson)
			output += fmt.Sprintf("  Run:   %s - %s (%s)\n",
				row.RunStart.Format("2006-01-02 15:04"),
				row.RunEnd.Format("2006-01-02 15:04"),
				row.ProductionPerson)
			output += fmt.Sprintf("  Timing: %s\n", row.Timing)
			output += "\n"
		}
	}

	// Machine and personnel utilization
	if len(utilization.Machines) > 0 {
		output += "🏭 MACHINE UTILIZATION\n"
		output += "────────────────────────────────────────────────────────────────\n"
		for _, machine := range utilization.Machines {
			output += fmt.Sprintf("  %-12s %6d min  %6s%%\n",
				machine.Machine, machine.BusyMinutes, machine.Percent.String())
		}
		output += "\n"
	}
	if len(utilization.Personnel) > 0 {
		output += "👷 PERSONNEL UTILIZATION\n"
		output += "────────────────────────────────────────────────────────────────\n"
		for _, person := range utilization.Personnel {
			output += fmt.Sprintf("  %-15s setup %6d min  production %6d min  %6s%%\n",
				person.Person, person.SetupMinutes, person.ProductionMinutes,
				person.Percent.String())
		}
		output += "\n"
	}

	// Effective shifts for the requested roster date
	if len(shifts) > 0 {
		output += "📅 EFFECTIVE SHIFTS\n"
		output += "────────────────────────────────────────────────────────────────\n"
		for _, shift := range shifts {
			output += fmt.Sprintf("  %-10s %s  %s\n",
				shift.EmployeeCode,
				shift.Date.Format("2006-01-02"),
				describeShift(shift.Shift))
		}
		output += "\n"
	}

	// Quality issues
	if len(result.Issues) > 0 {
		output += "🚨 QUALITY ISSUES\n"
		output += "────────────────────────────────────────────────────────────────\n"
		for _, issue := range result.Issues {
			output += fmt.Sprintf("  [%s] %s: %s\n",
				issue.Severity, issue.Rule, issue.Message)
		}
		output += "\n"
	}

	// Piece timeline
	if config.Verbose && len(result.PieceTimeline) > 0 {
		output += "🔧 PIECE TIMELINE\n"
		output += "────────────────────────────────────────────────────────────────\n"
		for _, entry := range result.PieceTimeline {
			output += fmt.Sprintf("  %-15s %s slice %d: %s - %s on %s (%s)\n",
				entry.PartNumber, entry.BatchID, entry.Slice,
				entry.Start.Format("2006-01-02 15:04"),
				entry.End.Format("15:04"),
				entry.Machine, entry.Person)
		}
		output += "\n"
	}

	output += "═══════════════════════════════════════════════════════════════\n"

	// Write to file or stdout
	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "schedule_results.txt")
		if err := os.WriteFile(filename, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
		if config.Verbose {
			fmt.Printf("📄 Text output written to: %s\n", filename)
		}
	} else {
		fmt.Print(output)
	}

	return nil
}

func describeShift(shift entities.EffectiveShift) string {
	switch {
	case !shift.Assigned:
		return "unassigned"
	case shift.IsOff:
		return fmt.Sprintf("%s (off, %s)", shift.ShiftName, shift.Source)
	default:
		return fmt.Sprintf("%s %s-%s (%s)",
			shift.ShiftName, shift.StartTime, shift.EndTime, shift.Source)
	}
}

// generateJSONOutput generates JSON output
func generateJSONOutput(
	result *dto.ScheduleResult,
	utilization reporting.UtilizationReport,
	shifts []EmployeeShift,
	config OutputConfig,
) error {
	jsonResult := struct {
		Metadata struct {
			RunID       string            `json:"run_id"`
			RunTime     string            `json:"run_time"`
			GeneratedAt string            `json:"generated_at"`
			InputFiles  map[string]string `json:"input_files"`
		} `json:"metadata"`
		Summary       dto.RunSummary                `json:"summary"`
		Rows          []entities.ScheduleRow        `json:"rows"`
		PieceTimeline []entities.PieceTimelineEntry `json:"piece_timeline"`
		Issues        []entities.QualityIssue       `json:"issues"`
		Utilization   reporting.UtilizationReport   `json:"utilization"`
		Shifts        []EmployeeShift               `json:"effective_shifts,omitempty"`
	}{
		Summary:       result.Summary,
		Rows:          result.Rows,
		PieceTimeline: result.PieceTimeline,
		Issues:        result.Issues,
		Utilization:   utilization,
		Shifts:        shifts,
	}

	jsonResult.Metadata.RunID = result.RunID
	jsonResult.Metadata.RunTime = config.RunTime.String()
	jsonResult.Metadata.GeneratedAt = time.Now().Format(time.RFC3339)
	jsonResult.Metadata.InputFiles = config.InputFiles

	jsonBytes, err := json.MarshalIndent(jsonResult, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "schedule_results.json")
		if err := os.WriteFile(filename, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write JSON output: %w", err)
		}
		if config.Verbose {
			fmt.Printf("📄 JSON output written to: %s\n", filename)
		}
	} else {
		fmt.Printf("%s\n", jsonBytes)
	}

	return nil
}

// generateCSVOutput generates CSV output files
func generateCSVOutput(result *dto.ScheduleResult, config OutputConfig) error {
	if config.OutputDir == "" {
		return fmt.Errorf("CSV output requires an output directory (-output)")
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if len(result.Rows) > 0 {
		filename := filepath.Join(config.OutputDir, "schedule_rows.csv")
		if err := writeRowsCSV(result.Rows, filename); err != nil {
			return fmt.Errorf("failed to write schedule rows CSV: %w", err)
		}
		if config.Verbose {
			fmt.Printf("📄 Schedule rows CSV written to: %s\n", filename)
		}
	}

	if len(result.PieceTimeline) > 0 {
		filename := filepath.Join(config.OutputDir, "piece_timeline.csv")
		if err := writeTimelineCSV(result.PieceTimeline, filename); err != nil {
			return fmt.Errorf("failed to write piece timeline CSV: %w", err)
		}
		if config.Verbose {
			fmt.Printf("📄 Piece timeline CSV written to: %s\n", filename)
		}
	}

	if len(result.Issues) > 0 {
		filename := filepath.Join(config.OutputDir, "quality_issues.csv")
		if err := writeIssuesCSV(result.Issues, filename); err != nil {
			return fmt.Errorf("failed to write quality issues CSV: %w", err)
		}
		if config.Verbose {
			fmt.Printf("📄 Quality issues CSV written to: %s\n", filename)
		}
	}

	return nil
}

// Helper functions for CSV writing

func writeRowsCSV(rows []entities.ScheduleRow, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"id", "part_number", "order_quantity", "priority", "batch_id",
		"batch_quantity", "operation_seq", "operation_name", "machine",
		"setup_person", "production_person", "handle_mode", "setup_start",
		"setup_end", "run_start", "run_end", "timing", "due_date",
		"machine_status",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		dueDate := ""
		if row.DueDate != nil {
			dueDate = row.DueDate.Format("2006-01-02")
		}
		record := []string{
			row.ID,
			string(row.PartNumber),
			strconv.Itoa(row.OrderQuantity),
			row.Priority.String(),
			row.BatchID,
			strconv.Itoa(row.BatchQuantity),
			strconv.Itoa(row.OperationSeq),
			row.OperationName,
			row.Machine,
			row.SetupPerson,
			row.ProductionPerson,
			row.HandleMode.String(),
			row.SetupStart.Format("2006-01-02 15:04"),
			row.SetupEnd.Format("2006-01-02 15:04"),
			row.RunStart.Format("2006-01-02 15:04"),
			row.RunEnd.Format("2006-01-02 15:04"),
			row.Timing,
			dueDate,
			row.MachineStatus,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeTimelineCSV(entries []entities.PieceTimelineEntry, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"part_number", "batch_id", "slice", "operation_seq", "operation_name",
		"machine", "person", "handle_mode", "start", "end", "status",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, entry := range entries {
		record := []string{
			string(entry.PartNumber),
			entry.BatchID,
			strconv.Itoa(entry.Slice),
			strconv.Itoa(entry.OperationSeq),
			entry.OperationName,
			entry.Machine,
			entry.Person,
			entry.HandleMode.String(),
			entry.Start.Format("2006-01-02 15:04"),
			entry.End.Format("2006-01-02 15:04"),
			entry.Status,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeIssuesCSV(issues []entities.QualityIssue, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"severity", "rule", "message"}); err != nil {
		return err
	}
	for _, issue := range issues {
		record := []string{issue.Severity.String(), issue.Rule, issue.Message}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}
