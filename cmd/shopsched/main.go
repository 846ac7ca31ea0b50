package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopsched/shopsched/pkg/application/services/reporting"
	"github.com/shopsched/shopsched/pkg/application/services/roster"
	"github.com/shopsched/shopsched/pkg/application/services/scheduling"
	"github.com/shopsched/shopsched/pkg/domain/entities"
	"github.com/shopsched/shopsched/pkg/infrastructure/repositories/csvdata"
	"github.com/shopsched/shopsched/pkg/infrastructure/repositories/memory"
	"github.com/shopsched/shopsched/pkg/infrastructure/scenario"
)

func main() {
	// Command line flags
	var (
		operationsFile = flag.String("operations", "", "Path to master operations CSV file")
		ordersFile     = flag.String("orders", "", "Path to orders CSV file")
		scenarioFile   = flag.String("scenario", "", "Path to scenario YAML file (settings + roster)")
		outputDir      = flag.String("output", "", "Output directory for results (optional)")
		format         = flag.String("format", "text", "Output format: text, json, csv")
		verbose        = flag.Bool("verbose", false, "Enable verbose output")
		rosterDate     = flag.String("roster-date", "", "Resolve effective shifts for this date (YYYY-MM-DD)")
		maxSetups      = flag.Int("max-setups", 0, "Maximum concurrent setups (0 = default)")
		horizonDays    = flag.Int("horizon-days", 0, "Scheduling horizon in days (0 = default)")
		help           = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	config := runConfig{
		OperationsFile: *operationsFile,
		OrdersFile:     *ordersFile,
		ScenarioFile:   *scenarioFile,
		OutputDir:      *outputDir,
		Format:         *format,
		Verbose:        *verbose,
		RosterDate:     *rosterDate,
		MaxSetups:      *maxSetups,
		HorizonDays:    *horizonDays,
	}

	if err := run(context.Background(), config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runConfig struct {
	OperationsFile string
	OrdersFile     string
	ScenarioFile   string
	OutputDir      string
	Format         string
	Verbose        bool
	RosterDate     string
	MaxSetups      int
	HorizonDays    int
}

func run(ctx context.Context, config runConfig) error {
	if config.OperationsFile == "" || config.OrdersFile == "" {
		return fmt.Errorf("both -operations and -orders are required (see -help)")
	}

	started := time.Now()

	loader := csvdata.NewLoader()
	specs, loadIssues, err := loader.LoadOperations(config.OperationsFile)
	if err != nil {
		return err
	}
	orders, err := loader.LoadOrders(config.OrdersFile)
	if err != nil {
		return err
	}

	scn := &scenario.Scenario{}
	if config.ScenarioFile != "" {
		scn, err = scenario.Load(config.ScenarioFile)
		if err != nil {
			return err
		}
	}

	operationRepo := memory.NewOperationRepository(len(specs))
	if err := operationRepo.LoadOperations(specs); err != nil {
		return fmt.Errorf("loading operations: %w", err)
	}

	engine := scheduling.NewEngineWithConfig(operationRepo, scheduling.EngineConfig{
		MaxConcurrentSetups: config.MaxSetups,
		HorizonDays:         config.HorizonDays,
	})

	result, err := engine.Run(ctx, orders, scn.Settings)
	if err != nil {
		return err
	}
	for _, issue := range loadIssues {
		result.AddIssue(issue)
	}
	for _, issue := range scn.Issues {
		result.AddIssue(issue)
	}

	utilization := reporting.BuildUtilization(result)

	shifts, err := resolveRoster(scn, config.RosterDate)
	if err != nil {
		return err
	}

	return generateOutput(result, utilization, shifts, OutputConfig{
		OutputDir:  config.OutputDir,
		Format:     config.Format,
		Verbose:    config.Verbose,
		InputFiles: inputFiles(config),
		RunTime:    time.Since(started),
	})
}

// resolveRoster computes the effective shift for every rostered employee on
// the requested date. Without a date or roster data it returns nothing.
func resolveRoster(scn *scenario.Scenario, rawDate string) ([]EmployeeShift, error) {
	if rawDate == "" || (len(scn.Assignments) == 0 && len(scn.Overrides) == 0) {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return nil, fmt.Errorf("invalid -roster-date %q (expected YYYY-MM-DD)", rawDate)
	}

	rosterRepo := memory.NewRosterRepository()
	if err := rosterRepo.LoadTemplates(scn.Templates); err != nil {
		return nil, fmt.Errorf("loading shift templates: %w", err)
	}
	if err := rosterRepo.LoadAssignments(scn.Assignments); err != nil {
		return nil, fmt.Errorf("loading assignments: %w", err)
	}
	if err := rosterRepo.LoadOverrides(scn.Overrides); err != nil {
		return nil, fmt.Errorf("loading overrides: %w", err)
	}

	resolver := roster.NewResolver(rosterRepo, scn.Settings.Holidays)
	codes, err := rosterRepo.GetEmployeeCodes()
	if err != nil {
		return nil, err
	}

	var shifts []EmployeeShift
	for _, code := range codes {
		shift, err := resolver.EffectiveShift(code, date)
		if err != nil {
			return nil, fmt.Errorf("resolving shift for %s: %w", code, err)
		}
		shifts = append(shifts, EmployeeShift{
			EmployeeCode: code,
			Date:         date,
			Shift:        shift,
		})
	}
	return shifts, nil
}

// EmployeeShift pairs an employee with their resolved shift for the roster view
type EmployeeShift struct {
	EmployeeCode string
	Date         time.Time
	Shift        entities.EffectiveShift
}

func inputFiles(config runConfig) map[string]string {
	files := map[string]string{
		"operations": config.OperationsFile,
		"orders":     config.OrdersFile,
	}
	if config.ScenarioFile != "" {
		files["scenario"] = config.ScenarioFile
	}
	return files
}
