package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

// RunSummary aggregates counters over one scheduling run
type RunSummary struct {
	OrdersRequested int       `json:"orders_requested"`
	OrdersScheduled int       `json:"orders_scheduled"`
	BatchesPlanned  int       `json:"batches_planned"`
	RowsEmitted     int       `json:"rows_emitted"`
	Warnings        int       `json:"warnings"`
	Criticals       int       `json:"criticals"`
	ScheduleStart   time.Time `json:"schedule_start"`
	ScheduleEnd     time.Time `json:"schedule_end"`
	MakespanMinutes int       `json:"makespan_minutes"`
}

// ScheduleResult is the complete output of one scheduling run: the schedule
// rows, the piece-level timeline, the accumulated quality issues and run
// metadata. The RunID is metadata only; it never influences row content or
// ordering.
type ScheduleResult struct {
	RunID         string                        `json:"run_id"`
	Rows          []entities.ScheduleRow        `json:"rows"`
	PieceTimeline []entities.PieceTimelineEntry `json:"piece_timeline"`
	Issues        []entities.QualityIssue       `json:"issues"`
	Summary       RunSummary                    `json:"summary"`
}

// NewScheduleResult creates an empty result with a fresh run identifier
func NewScheduleResult() *ScheduleResult {
	return &ScheduleResult{RunID: uuid.NewString()}
}

// AddIssue appends a quality issue and bumps the severity counters.
func (r *ScheduleResult) AddIssue(issue entities.QualityIssue) {
	r.Issues = append(r.Issues, issue)
	if issue.Severity == entities.SeverityCritical {
		r.Summary.Criticals++
	} else {
		r.Summary.Warnings++
	}
}

// AddRow appends a schedule row and stretches the summary's schedule span.
func (r *ScheduleResult) AddRow(row entities.ScheduleRow) {
	r.Rows = append(r.Rows, row)
	r.Summary.RowsEmitted++

	if r.Summary.ScheduleStart.IsZero() || row.SetupStart.Before(r.Summary.ScheduleStart) {
		r.Summary.ScheduleStart = row.SetupStart
	}
	if row.RunEnd.After(r.Summary.ScheduleEnd) {
		r.Summary.ScheduleEnd = row.RunEnd
	}
	if !r.Summary.ScheduleStart.IsZero() {
		r.Summary.MakespanMinutes = int(
			r.Summary.ScheduleEnd.Sub(r.Summary.ScheduleStart) / time.Minute)
	}
}

// HasCriticalIssues reports whether any critical issue was recorded.
func (r *ScheduleResult) HasCriticalIssues() bool {
	return r.Summary.Criticals > 0
}
