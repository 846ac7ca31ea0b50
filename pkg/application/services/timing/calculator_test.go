package timing

import (
	"strings"
	"testing"
	"time"

	"github.com/shopsched/shopsched/pkg/domain/entities"
)

func moment(day, hour, minute int) time.Time {
	return time.Date(2026, time.August, day, hour, minute, 0, 0, time.UTC)
}

func TestScheduleWithinOneWindow(t *testing.T) {
	calendar := NewCalendar(nil, nil)
	windows := []Window{MustParseWindow("06:00-22:00")}

	result, err := calendar.Schedule(120, moment(3, 8, 0), "VMC-1", windows)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if !result.Start.Equal(moment(3, 8, 0)) || !result.End.Equal(moment(3, 10, 0)) {
		t.Errorf("span = %v - %v, want 08:00 - 10:00", result.Start, result.End)
	}
	if result.WorkedMinutes != 120 || result.PausedMinutes != 0 {
		t.Errorf("worked %d paused %d, want 120/0", result.WorkedMinutes, result.PausedMinutes)
	}
	if len(result.Segments) != 1 {
		t.Errorf("segments = %d, want 1", len(result.Segments))
	}
}

func TestScheduleSkipsLeadIn(t *testing.T) {
	calendar := NewCalendar(nil, nil)
	windows := []Window{MustParseWindow("06:00-22:00")}

	// Requested at 04:00; work cannot begin until the window opens and the
	// wait does not count as paused time.
	result, err := calendar.Schedule(60, moment(3, 4, 0), "VMC-1", windows)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if !result.Start.Equal(moment(3, 6, 0)) {
		t.Errorf("start = %v, want 06:00", result.Start)
	}
	if result.PausedMinutes != 0 {
		t.Errorf("lead-in counted as paused: %d", result.PausedMinutes)
	}
}

func TestSchedulePausesAcrossShiftGap(t *testing.T) {
	calendar := NewCalendar(nil, nil)
	windows := []Window{MustParseWindow("06:00-14:00")}

	// 10 hours of work in an 8-hour window pauses overnight.
	result, err := calendar.Schedule(600, moment(3, 6, 0), "VMC-1", windows)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	if result.WorkedMinutes != 600 {
		t.Errorf("worked = %d, want 600", result.WorkedMinutes)
	}
	wantPaused := 16 * 60
	if result.PausedMinutes != wantPaused {
		t.Errorf("paused = %d, want %d", result.PausedMinutes, wantPaused)
	}
	wantEnd := moment(4, 8, 0)
	if !result.End.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", result.End, wantEnd)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("segments = %d, want 2", len(result.Segments))
	}
	if !result.Segments[0].End.Equal(moment(3, 14, 0)) ||
		!result.Segments[1].Start.Equal(moment(4, 6, 0)) {
		t.Errorf("segments = %+v", result.Segments)
	}

	elapsed := int(result.End.Sub(result.Start) / time.Minute)
	if elapsed != result.WorkedMinutes+result.PausedMinutes {
		t.Errorf("elapsed %d != worked %d + paused %d",
			elapsed, result.WorkedMinutes, result.PausedMinutes)
	}
}

func TestSchedulePausesThroughHoliday(t *testing.T) {
	holiday := entities.Holiday{
		Interval: entities.Interval{Start: moment(4, 0, 0), End: moment(5, 0, 0)},
		Name:     "Foundry Day",
	}
	calendar := NewCalendar([]entities.Holiday{holiday}, nil)
	windows := []Window{MustParseWindow("06:00-14:00")}

	result, err := calendar.Schedule(600, moment(3, 6, 0), "VMC-1", windows)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	// Work resumes on the 5th, after the holiday consumed the 4th.
	if !result.End.Equal(moment(5, 8, 0)) {
		t.Errorf("end = %v, want resume after holiday at %v", result.End, moment(5, 8, 0))
	}
}

func TestScheduleBreakdownScopedToMachine(t *testing.T) {
	breakdown := entities.Breakdown{
		Interval: entities.Interval{Start: moment(3, 8, 0), End: moment(3, 10, 0)},
		Machines: []string{"VMC-1"},
	}
	calendar := NewCalendar(nil, []entities.Breakdown{breakdown})
	windows := []Window{MustParseWindow("06:00-22:00")}

	broken, err := calendar.Schedule(180, moment(3, 7, 0), "VMC-1", windows)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if broken.PausedMinutes != 120 {
		t.Errorf("paused = %d, want 120 through the breakdown", broken.PausedMinutes)
	}

	healthy, err := calendar.Schedule(180, moment(3, 7, 0), "VMC-2", windows)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if healthy.PausedMinutes != 0 {
		t.Errorf("other machine paused = %d, want 0", healthy.PausedMinutes)
	}
}

func TestScheduleOvernightWindow(t *testing.T) {
	calendar := NewCalendar(nil, nil)
	windows := []Window{MustParseWindow("22:00-06:00")}

	result, err := calendar.Schedule(240, moment(3, 23, 0), "VMC-1", windows)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if !result.End.Equal(moment(4, 3, 0)) {
		t.Errorf("end = %v, want wrap past midnight to 03:00", result.End)
	}
	if result.PausedMinutes != 0 {
		t.Errorf("paused = %d, want 0 inside overnight window", result.PausedMinutes)
	}
}

func TestScheduleHorizonExceeded(t *testing.T) {
	holiday := entities.Holiday{
		Interval: entities.Interval{
			Start: moment(1, 0, 0),
			End:   moment(1, 0, 0).AddDate(1, 0, 0),
		},
		Name: "Plant Closure",
	}
	calendar := NewCalendar([]entities.Holiday{holiday}, nil)
	calendar.HorizonDays = 10
	windows := []Window{MustParseWindow("06:00-22:00")}

	if _, err := calendar.Schedule(60, moment(3, 6, 0), "VMC-1", windows); err == nil {
		t.Error("expected horizon error during year-long closure")
	}
}

func TestScheduleZeroDuration(t *testing.T) {
	calendar := NewCalendar(nil, nil)
	windows := []Window{MustParseWindow("06:00-22:00")}

	result, err := calendar.Schedule(0, moment(3, 4, 0), "VMC-1", windows)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if !result.Start.Equal(result.End) || !result.Start.Equal(moment(3, 6, 0)) {
		t.Errorf("zero-duration span = %v - %v, want collapsed at 06:00",
			result.Start, result.End)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{37, "37M"},
		{517, "8H 37M"},
		{6277, "4D 8H 37M"},
		{300, "5H"},
		{1440, "1D"},
		{1500, "1D 1H"},
		{0, "0M"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatTiming(t *testing.T) {
	start := moment(3, 6, 0)

	plain := FormatTiming(start, start.Add(90*time.Minute), 0)
	if plain != "1H 30M" {
		t.Errorf("plain timing = %q, want 1H 30M", plain)
	}

	paused := FormatTiming(start, start.Add(25*time.Hour), 300)
	if !strings.Contains(paused, "paused 5H due to shift gaps") {
		t.Errorf("paused timing = %q, want paused call-out", paused)
	}
	if !strings.HasPrefix(paused, "1D 1H") {
		t.Errorf("paused timing = %q, want elapsed prefix 1D 1H", paused)
	}
}
