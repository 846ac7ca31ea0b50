package roster

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// Row is one loosely-typed row of the tabular personnel block, keyed by
// column header as supplied by the sheet source.
type Row map[string]string

// ParseIssueCode identifies the kind of anomaly found while parsing
type ParseIssueCode string

const (
	IssueMissingRequiredColumn ParseIssueCode = "missing_required_column"
	IssueSchemaMarkerRow       ParseIssueCode = "schema_marker_row"
	IssueInvalidLevelUpValue   ParseIssueCode = "invalid_level_up_value"
	IssueIncompletePersonRow   ParseIssueCode = "incomplete_person_row"
	IssueDuplicateUIDConflict  ParseIssueCode = "duplicate_person_uid_conflict"
	IssueDuplicateNameConflict ParseIssueCode = "duplicate_person_name_conflict"
)

// ParseIssue is one anomaly found while parsing the personnel block
type ParseIssue struct {
	Code     ParseIssueCode
	Severity entities.IssueSeverity
	Row      int
	Message  string
	Value    string
}

// ParseSummary carries row and eligibility counters for the parse
type ParseSummary struct {
	ProductionRowsDetected  int
	SetupRowsDetected       int
	SetupEligibleCount      int
	ProductionEligibleCount int
}

// ParseResult is the outcome of parsing a personnel block. A critical issue
// means the profile set is empty; warnings mean rows were skipped or
// defaulted but parsing continued.
type ParseResult struct {
	Profiles []entities.PersonnelProfile
	Issues   []ParseIssue
	Summary  ParseSummary
}

// HasCritical reports whether parsing aborted on a critical issue.
func (r ParseResult) HasCritical() bool {
	for _, issue := range r.Issues {
		if issue.Severity == entities.SeverityCritical {
			return true
		}
	}
	return false
}

var (
	sectionColumnAliases = []string{"Production-Person", "production_person", "production person"}
	uidColumnAliases     = []string{"uid", "user id", "employee id"}
	nameColumnAliases    = []string{"Name", "person name", "employee name"}
	levelColumnAliases   = []string{"level-up", "level up", "levelup", "level"}

	productionMarkerTokens = map[string]bool{
		"productionperson": true, "production": true, "productionteam": true,
	}
	setupMarkerTokens = map[string]bool{
		"setupperson": true, "setup": true, "setupteam": true,
	}
	headerMarkerTokens = map[string]bool{
		"uid": true, "name": true, "levelup": true, "level": true,
	}
)

// normalizeKey folds a header or cell token for punctuation-insensitive
// comparison.
func normalizeKey(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// findColumnKey locates the first column whose normalized header matches any
// alias, scanning all rows because loose sheets may carry sparse headers.
func findColumnKey(rows []Row, aliases []string) string {
	targets := make(map[string]bool, len(aliases))
	for _, alias := range aliases {
		targets[normalizeKey(alias)] = true
	}
	for _, row := range rows {
		keys := make([]string, 0, len(row))
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if targets[normalizeKey(key)] {
				return key
			}
		}
	}
	return ""
}

func parseSectionMarker(value string) (entities.Section, bool) {
	token := normalizeKey(value)
	if token == "" {
		return entities.ProductionSection, false
	}
	if setupMarkerTokens[token] {
		return entities.SetupSection, true
	}
	if productionMarkerTokens[token] {
		return entities.ProductionSection, true
	}
	return entities.ProductionSection, false
}

func readCell(row Row, key string) string {
	if key == "" {
		return ""
	}
	return strings.TrimSpace(row[key])
}

// ParsePersonnel converts the loosely-typed personnel block into typed
// profiles. Section marker cells toggle the current section for subsequent
// rows; anomalous rows are skipped with warnings. Missing required columns
// abort the parse with a single critical issue and zero profiles.
func ParsePersonnel(rows []Row) ParseResult {
	var result ParseResult

	sectionKey := findColumnKey(rows, sectionColumnAliases)
	uidKey := findColumnKey(rows, uidColumnAliases)
	nameKey := findColumnKey(rows, nameColumnAliases)
	levelKey := findColumnKey(rows, levelColumnAliases)

	if sectionKey == "" || uidKey == "" || nameKey == "" || levelKey == "" {
		result.Issues = append(result.Issues, ParseIssue{
			Code:     IssueMissingRequiredColumn,
			Severity: entities.SeverityCritical,
			Row:      1,
			Message:  "personnel columns missing; required: Production-Person, uid, Name, level-up",
		})
		return result
	}

	currentSection := entities.ProductionSection
	byUID := make(map[string]*entities.PersonnelProfile)
	var uidOrder []string
	nameToUID := make(map[string]string)

	for index, row := range rows {
		rowNumber := index + 2 // data starts below the sheet header row

		if section, ok := parseSectionMarker(readCell(row, sectionKey)); ok {
			currentSection = section
		}

		uid := readCell(row, uidKey)
		name := readCell(row, nameKey)
		levelRaw := readCell(row, levelKey)

		if uid == "" && name == "" && levelRaw == "" {
			continue
		}

		if headerMarkerTokens[normalizeKey(uid)] ||
			headerMarkerTokens[normalizeKey(name)] ||
			headerMarkerTokens[normalizeKey(levelRaw)] {
			result.Issues = append(result.Issues, ParseIssue{
				Code:     IssueSchemaMarkerRow,
				Severity: entities.SeverityWarning,
				Row:      rowNumber,
				Message:  "ignored schema marker row in personnel block",
			})
			continue
		}

		if uid == "" || name == "" {
			result.Issues = append(result.Issues, ParseIssue{
				Code:     IssueIncompletePersonRow,
				Severity: entities.SeverityWarning,
				Row:      rowNumber,
				Message:  "ignored personnel row with missing uid or Name",
			})
			continue
		}

		// An empty level-up cell means no cross-section eligibility; an
		// invalid one falls back to the section default.
		sectionDefault := 0
		if currentSection == entities.SetupSection {
			sectionDefault = 1
		}
		levelUp := parseLevelValue(levelRaw, rowNumber, sectionDefault, &result.Issues)

		if currentSection == entities.SetupSection {
			result.Summary.SetupRowsDetected++
		} else {
			result.Summary.ProductionRowsDetected++
		}

		nameKeyLower := strings.ToLower(name)
		if existingUID, seen := nameToUID[nameKeyLower]; seen && existingUID != uid {
			result.Issues = append(result.Issues, ParseIssue{
				Code:     IssueDuplicateNameConflict,
				Severity: entities.SeverityWarning,
				Row:      rowNumber,
				Message: fmt.Sprintf("name %q is mapped to multiple uids (%s, %s)",
					name, existingUID, uid),
			})
		}
		nameToUID[nameKeyLower] = uid

		profile := entities.NewPersonnelProfile(uid, name, currentSection, levelUp)

		existing, seen := byUID[uid]
		if !seen {
			byUID[uid] = &profile
			uidOrder = append(uidOrder, uid)
			continue
		}

		if existing.Name != name {
			result.Issues = append(result.Issues, ParseIssue{
				Code:     IssueDuplicateUIDConflict,
				Severity: entities.SeverityWarning,
				Row:      rowNumber,
				Message: fmt.Sprintf("uid %s has conflicting names (%s vs %s); keeping first",
					uid, existing.Name, name),
			})
		}
		existing.Merge(profile)
	}

	result.Profiles = make([]entities.PersonnelProfile, 0, len(uidOrder))
	for _, uid := range uidOrder {
		result.Profiles = append(result.Profiles, *byUID[uid])
	}
	sort.SliceStable(result.Profiles, func(i, j int) bool {
		if result.Profiles[i].SetupPriority != result.Profiles[j].SetupPriority {
			return result.Profiles[i].SetupPriority < result.Profiles[j].SetupPriority
		}
		return result.Profiles[i].Name < result.Profiles[j].Name
	})

	for _, profile := range result.Profiles {
		if profile.SetupEligible {
			result.Summary.SetupEligibleCount++
		}
		if profile.ProductionEligible {
			result.Summary.ProductionEligibleCount++
		}
	}

	return result
}

// parseLevelValue validates a level-up cell. Only 0 and 1 are accepted;
// anything else falls back to the section default with a warning. An empty
// cell is unset, not invalid.
func parseLevelValue(raw string, rowNumber, fallback int, issues *[]ParseIssue) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err == nil && (value == 0 || value == 1) {
		return value
	}
	*issues = append(*issues, ParseIssue{
		Code:     IssueInvalidLevelUpValue,
		Severity: entities.SeverityWarning,
		Row:      rowNumber,
		Message:  fmt.Sprintf("invalid level-up value %q, falling back to %d", raw, fallback),
		Value:    raw,
	})
	return fallback
}
