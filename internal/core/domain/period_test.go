package domain_test

import (
	"testing"
	"time"

	"github.com/fundline/mca_backend/internal/apperrors"
	"github.com/fundline/mca_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewPeriod(t *testing.T) {
	p, err := domain.NewPeriod(date(2024, 1, 1), date(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), p.Start)
	assert.Equal(t, date(2024, 1, 31), p.End)

	// Bounds are normalized to midnight UTC.
	p, err = domain.NewPeriod(
		time.Date(2024, 1, 1, 13, 45, 12, 0, time.UTC),
		time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC),
	)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), p.Start)
	assert.Equal(t, date(2024, 1, 31), p.End)

	_, err = domain.NewPeriod(date(2024, 2, 1), date(2024, 1, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
}

func TestResolvePeriod_Presets(t *testing.T) {
	// A Wednesday, mid-month.
	now := time.Date(2024, 1, 17, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		preset   domain.PeriodPreset
		expected domain.Period
	}{
		{
			name:     "today",
			preset:   domain.PresetToday,
			expected: domain.Period{Start: date(2024, 1, 17), End: date(2024, 1, 17)},
		},
		{
			name:     "this week starts on Monday",
			preset:   domain.PresetThisWeek,
			expected: domain.Period{Start: date(2024, 1, 15), End: date(2024, 1, 17)},
		},
		{
			name:     "this month",
			preset:   domain.PresetThisMonth,
			expected: domain.Period{Start: date(2024, 1, 1), End: date(2024, 1, 17)},
		},
		{
			name:     "last 30 days",
			preset:   domain.PresetLast30Days,
			expected: domain.Period{Start: date(2023, 12, 18), End: date(2024, 1, 17)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := domain.ResolvePeriod(tc.preset, time.Time{}, time.Time{}, now)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestResolvePeriod_WeekStartsOnMondayWhenTodayIsSunday(t *testing.T) {
	now := date(2024, 1, 21) // a Sunday
	p, err := domain.ResolvePeriod(domain.PresetThisWeek, time.Time{}, time.Time{}, now)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 15), p.Start)
	assert.Equal(t, date(2024, 1, 21), p.End)
}

func TestResolvePeriod_Custom(t *testing.T) {
	now := date(2024, 6, 1)

	p, err := domain.ResolvePeriod(domain.PresetCustom, date(2024, 1, 1), date(2024, 1, 31), now)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 1, 1), p.Start)
	assert.Equal(t, date(2024, 1, 31), p.End)

	_, err = domain.ResolvePeriod(domain.PresetCustom, time.Time{}, date(2024, 1, 31), now)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)

	_, err = domain.ResolvePeriod(domain.PresetCustom, date(2024, 1, 31), date(2024, 1, 1), now)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
}

func TestResolvePeriod_UnknownPreset(t *testing.T) {
	_, err := domain.ResolvePeriod("fortnight", time.Time{}, time.Time{}, date(2024, 6, 1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidPeriod)
}

func TestPeriodContains(t *testing.T) {
	p := domain.Period{Start: date(2024, 1, 1), End: date(2024, 1, 31)}

	assert.True(t, p.Contains(date(2024, 1, 1)), "start day is inclusive")
	assert.True(t, p.Contains(date(2024, 1, 31)), "end day is inclusive")
	assert.True(t, p.Contains(time.Date(2024, 1, 31, 23, 0, 0, 0, time.UTC)), "time of day is ignored")
	assert.False(t, p.Contains(date(2023, 12, 31)))
	assert.False(t, p.Contains(date(2024, 2, 1)))
}

func TestPeriodDays(t *testing.T) {
	p := domain.Period{Start: date(2024, 1, 30), End: date(2024, 2, 2)}
	days := p.Days()
	require.Len(t, days, 4)
	assert.Equal(t, date(2024, 1, 30), days[0])
	assert.Equal(t, date(2024, 2, 2), days[3])

	single := domain.Period{Start: date(2024, 1, 1), End: date(2024, 1, 1)}
	assert.Len(t, single.Days(), 1)

	// January has 31 days; the breakdown covers each one.
	january := domain.Period{Start: date(2024, 1, 1), End: date(2024, 1, 31)}
	assert.Len(t, january.Days(), 31)
}

func TestPeriodPresetValid(t *testing.T) {
	for _, preset := range domain.AllPeriodPresets {
		assert.True(t, preset.Valid(), string(preset))
	}
	assert.False(t, domain.PeriodPreset("yesterday").Valid())
}
