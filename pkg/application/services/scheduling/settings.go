package scheduling

import (
	"fmt"
	"time"

	"github.com/shopsched/shopsched/pkg/application/services/timing"
	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// Quality issue rule names emitted by the engine.
const (
	RuleNoAvailableMachine     = "No Available Machine"
	RuleNoEligiblePersonnel    = "No Eligible Personnel"
	RuleTimingHorizonExceeded  = "Timing Horizon Exceeded"
	RuleMissingMasterOperation = "Missing Master Operation"
	RuleBatchValidation        = "Batch Validation"
	RuleUnknownHandleMode      = "Unknown Handle Mode"
	RuleSettingsDefaulted      = "Settings Defaulted"
)

// GlobalSettings is the run-wide input the orchestrator schedules against.
// Window strings use the "HH:MM-HH:MM" form; garbled or missing windows fall
// back to defaults with a warning rather than failing the run.
type GlobalSettings struct {
	GlobalStartDateTime time.Time
	SetupWindow         string
	ProductionWindows   []string
	Holidays            []entities.Holiday
	Breakdowns          []entities.Breakdown
	Profiles            []entities.PersonnelProfile
}

// resolvedSettings is the parsed, defaulted form the engine works with.
type resolvedSettings struct {
	start             time.Time
	setupWindows      []timing.Window
	productionWindows []timing.Window
	issues            []entities.QualityIssue
}

// resolveSettings parses the window strings and applies defaults. Every
// applied default is surfaced as a warning so operators can see the run did
// not use what they supplied.
func resolveSettings(settings GlobalSettings) resolvedSettings {
	var resolved resolvedSettings

	resolved.start = settings.GlobalStartDateTime
	if resolved.start.IsZero() {
		resolved.start = time.Now().UTC().Truncate(24 * time.Hour)
		resolved.issues = append(resolved.issues, entities.Warning(
			RuleSettingsDefaulted,
			fmt.Sprintf("global start missing, defaulting to %s",
				resolved.start.Format("2006-01-02"))))
	}

	setupWindow, err := timing.ParseWindow(settings.SetupWindow)
	if err != nil {
		setupWindow = timing.MustParseWindow(timing.DefaultSetupWindow)
		resolved.issues = append(resolved.issues, entities.Warning(
			RuleSettingsDefaulted,
			fmt.Sprintf("setup window %q unusable, defaulting to %s",
				settings.SetupWindow, timing.DefaultSetupWindow)))
	}
	resolved.setupWindows = []timing.Window{setupWindow}

	for _, raw := range settings.ProductionWindows {
		window, err := timing.ParseWindow(raw)
		if err != nil {
			resolved.issues = append(resolved.issues, entities.Warning(
				RuleSettingsDefaulted,
				fmt.Sprintf("production window %q unusable, skipping", raw)))
			continue
		}
		resolved.productionWindows = append(resolved.productionWindows, window)
	}
	if len(resolved.productionWindows) == 0 {
		resolved.productionWindows = []timing.Window{
			timing.MustParseWindow(timing.DefaultProductionWindow),
		}
		if len(settings.ProductionWindows) > 0 {
			resolved.issues = append(resolved.issues, entities.Warning(
				RuleSettingsDefaulted,
				fmt.Sprintf("no usable production windows, defaulting to %s",
					timing.DefaultProductionWindow)))
		}
	}

	return resolved
}
