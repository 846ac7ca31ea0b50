package entities

// IssueSeverity represents how serious a quality issue is
type IssueSeverity int

const (
	SeverityWarning IssueSeverity = iota
	SeverityCritical
)

// String method for IssueSeverity enum
func (s IssueSeverity) String() string {
	if s == SeverityCritical {
		return "critical"
	}
	return "warning"
}

// QualityIssue is a structured note about an infeasible or anomalous
// scheduling decision. Issues are accumulated, never raised as errors, so a
// partial schedule is always produced.
type QualityIssue struct {
	Severity IssueSeverity
	Rule     string
	Message  string
}

// Warning builds a warning-level quality issue.
func Warning(rule, message string) QualityIssue {
	return QualityIssue{Severity: SeverityWarning, Rule: rule, Message: message}
}

// Critical builds a critical-level quality issue.
func Critical(rule, message string) QualityIssue {
	return QualityIssue{Severity: SeverityCritical, Rule: rule, Message: message}
}
