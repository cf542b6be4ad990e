package strategy

import (
	"time"

	btErrors "github.com/ducminhle1904/dca-backtester/internal/errors"
	"github.com/ducminhle1904/dca-backtester/pkg/config"
)

// InvestmentScheduler decides when a regular investment is due. It tracks
// a last-investment cursor instead of precomputing a date list, so gaps
// and irregular spacing in the price series do not skip investments.
type InvestmentScheduler struct {
	frequency      config.Frequency
	lastInvestment time.Time
	invested       bool
}

// NewInvestmentScheduler creates a scheduler for the given window.
// The window is only validated here; ticks outside it are the
// orchestrator's concern.
func NewInvestmentScheduler(start, end time.Time, frequency config.Frequency) (*InvestmentScheduler, error) {
	if !start.Before(end) {
		return nil, btErrors.New(btErrors.KindPlan, "scheduler",
			"start %s must be before end %s", start.Format(config.DateFormat), end.Format(config.DateFormat))
	}
	if _, err := config.ParseFrequency(string(frequency)); err != nil {
		return nil, btErrors.Wrap(err, btErrors.KindPlan, "scheduler", "invalid frequency")
	}
	return &InvestmentScheduler{frequency: frequency}, nil
}

// Due reports whether a regular investment is due at the tick's date.
// The first tick is always due.
func (s *InvestmentScheduler) Due(t time.Time) bool {
	if !s.invested {
		return true
	}

	current := dateOnly(t)
	last := dateOnly(s.lastInvestment)

	switch s.frequency {
	case config.FrequencyDaily:
		return current.After(last)
	case config.FrequencyWeekly:
		return current.Sub(last) >= 7*24*time.Hour
	case config.FrequencyMonthly:
		return monthIndex(current) > monthIndex(last)
	}
	return false
}

// MarkInvested advances the cursor after a regular buy executed.
func (s *InvestmentScheduler) MarkInvested(t time.Time) {
	s.lastInvestment = t
	s.invested = true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// monthIndex flattens year and month so year rollover compares correctly
func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month())
}
