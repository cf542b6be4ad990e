package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	btErrors "github.com/ducminhle1904/dca-backtester/internal/errors"
	"github.com/ducminhle1904/dca-backtester/pkg/config"
)

func newTestScheduler(t *testing.T, frequency config.Frequency) *InvestmentScheduler {
	t.Helper()
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := NewInvestmentScheduler(start, end, frequency)
	require.NoError(t, err)
	return s
}

func TestNewInvestmentScheduler_InvalidRange(t *testing.T) {
	start := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewInvestmentScheduler(start, end, config.FrequencyDaily)
	require.Error(t, err)
	assert.True(t, btErrors.IsInvalidPlan(err))

	// Equal dates are also invalid
	_, err = NewInvestmentScheduler(start, start, config.FrequencyDaily)
	require.Error(t, err)
}

func TestScheduler_FirstTickAlwaysDue(t *testing.T) {
	for _, freq := range []config.Frequency{config.FrequencyDaily, config.FrequencyWeekly, config.FrequencyMonthly} {
		s := newTestScheduler(t, freq)
		tick := time.Date(2023, 1, 3, 12, 0, 0, 0, time.UTC)
		assert.True(t, s.Due(tick), "first tick should be due for %s", freq)
	}
}

func TestScheduler_Daily(t *testing.T) {
	s := newTestScheduler(t, config.FrequencyDaily)

	day1 := time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.True(t, s.Due(day1))
	s.MarkInvested(day1)

	// Same calendar date, later hour: not due
	assert.False(t, s.Due(day1.Add(6*time.Hour)))

	// Next calendar date: due
	assert.True(t, s.Due(day1.Add(24*time.Hour)))

	// Gap in the series still yields a single due tick
	assert.True(t, s.Due(day1.AddDate(0, 0, 5)))
}

func TestScheduler_Weekly70DayWindow(t *testing.T) {
	// One tick per day over a 70-day window should produce exactly 10
	// due dates, day 0 included.
	s := newTestScheduler(t, config.FrequencyWeekly)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	dueCount := 0
	for day := 0; day < 70; day++ {
		tick := start.AddDate(0, 0, day)
		if s.Due(tick) {
			dueCount++
			s.MarkInvested(tick)
		}
	}
	assert.Equal(t, 10, dueCount)
}

func TestScheduler_Monthly(t *testing.T) {
	s := newTestScheduler(t, config.FrequencyMonthly)

	jan := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	require.True(t, s.Due(jan))
	s.MarkInvested(jan)

	// Later in the same month: not due
	assert.False(t, s.Due(time.Date(2023, 1, 28, 0, 0, 0, 0, time.UTC)))

	// Next month, even at an earlier day-of-month: due
	feb := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, s.Due(feb))
	s.MarkInvested(feb)

	assert.False(t, s.Due(time.Date(2023, 2, 20, 0, 0, 0, 0, time.UTC)))
}

func TestScheduler_MonthlyYearRollover(t *testing.T) {
	s := newTestScheduler(t, config.FrequencyMonthly)

	dec := time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC)
	require.True(t, s.Due(dec))
	s.MarkInvested(dec)

	jan := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.True(t, s.Due(jan))
}
