package domain

import (
	"fmt"
	"time"

	"github.com/fundline/mca_backend/internal/apperrors"
)

// PeriodPreset is a named shorthand for a concrete date interval.
type PeriodPreset string

const (
	PresetToday      PeriodPreset = "today"
	PresetThisWeek   PeriodPreset = "this_week"
	PresetThisMonth  PeriodPreset = "this_month"
	PresetLast30Days PeriodPreset = "last_30_days"
	PresetCustom     PeriodPreset = "custom_range"
)

// AllPeriodPresets lists the recognized presets.
var AllPeriodPresets = []PeriodPreset{
	PresetToday,
	PresetThisWeek,
	PresetThisMonth,
	PresetLast30Days,
	PresetCustom,
}

// Valid reports whether p is a recognized preset.
func (p PeriodPreset) Valid() bool {
	for _, preset := range AllPeriodPresets {
		if p == preset {
			return true
		}
	}
	return false
}

// Period is a closed calendar-date interval [Start, End], both inclusive.
// Start and End are normalized to midnight UTC.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod builds a period from explicit bounds, rejecting start > end.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: truncateToDate(start), End: truncateToDate(end)}
	if p.Start.After(p.End) {
		return Period{}, fmt.Errorf("%w: start %s is after end %s",
			apperrors.ErrInvalidPeriod, p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
	}
	return p, nil
}

// ResolvePeriod turns a preset (or explicit custom bounds) into a concrete
// interval, relative to now. Custom ranges require both bounds.
func ResolvePeriod(preset PeriodPreset, start, end time.Time, now time.Time) (Period, error) {
	today := truncateToDate(now)

	switch preset {
	case PresetToday:
		return Period{Start: today, End: today}, nil
	case PresetThisWeek:
		// Week starts on Monday.
		offset := (int(today.Weekday()) + 6) % 7
		return Period{Start: today.AddDate(0, 0, -offset), End: today}, nil
	case PresetThisMonth:
		return Period{Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), End: today}, nil
	case PresetLast30Days:
		return Period{Start: today.AddDate(0, 0, -30), End: today}, nil
	case PresetCustom:
		if start.IsZero() || end.IsZero() {
			return Period{}, fmt.Errorf("%w: custom range requires both start and end dates", apperrors.ErrInvalidPeriod)
		}
		return NewPeriod(start, end)
	default:
		return Period{}, fmt.Errorf("%w: unknown preset %q", apperrors.ErrInvalidPeriod, preset)
	}
}

// Validate rejects intervals whose start falls after their end.
func (p Period) Validate() error {
	if p.Start.After(p.End) {
		return fmt.Errorf("%w: start %s is after end %s",
			apperrors.ErrInvalidPeriod, p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
	}
	return nil
}

// Contains reports whether the calendar date of t falls within the interval.
func (p Period) Contains(t time.Time) bool {
	d := truncateToDate(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Days returns every calendar day in the interval, ascending.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
