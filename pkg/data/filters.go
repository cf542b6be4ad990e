package data

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ducminhle1904/dca-backtester/pkg/types"
)

// DefaultDataFilter implements DataFilter for common filtering operations
type DefaultDataFilter struct{}

// NewDefaultDataFilter creates a new default data filter
func NewDefaultDataFilter() *DefaultDataFilter {
	return &DefaultDataFilter{}
}

// FilterByPeriod keeps the trailing period, anchored at the newest
// observation. Input must already be in chronological order.
func (f *DefaultDataFilter) FilterByPeriod(data []types.PriceObservation, period time.Duration) []types.PriceObservation {
	if period <= 0 || len(data) == 0 {
		return data
	}

	cutoff := data[len(data)-1].Timestamp.Add(-period)

	startIdx := 0
	for i, obs := range data {
		if !obs.Timestamp.Before(cutoff) {
			startIdx = i
			break
		}
	}
	return data[startIdx:]
}

// FilterByDateRange keeps observations within [start, end] inclusive.
func (f *DefaultDataFilter) FilterByDateRange(data []types.PriceObservation, start, end time.Time) []types.PriceObservation {
	if len(data) == 0 {
		return data
	}

	var filtered []types.PriceObservation
	for _, obs := range data {
		if !obs.Timestamp.Before(start) && !obs.Timestamp.After(end) {
			filtered = append(filtered, obs)
		}
	}
	return filtered
}

// ValidateTimeSequence ensures data is in strictly ascending order.
func (f *DefaultDataFilter) ValidateTimeSequence(data []types.PriceObservation) error {
	if len(data) <= 1 {
		return nil
	}

	for i := 1; i < len(data); i++ {
		if data[i].Timestamp.Before(data[i-1].Timestamp) {
			return fmt.Errorf("data not in chronological order at index %d: %s comes after %s",
				i, data[i].Timestamp.Format(time.RFC3339), data[i-1].Timestamp.Format(time.RFC3339))
		}
		if data[i].Timestamp.Equal(data[i-1].Timestamp) {
			return fmt.Errorf("duplicate timestamp at index %d: %s",
				i, data[i].Timestamp.Format(time.RFC3339))
		}
	}
	return nil
}

// ParseTrailingPeriod converts strings like "7d", "30d", "365d" into a
// duration. Returns false for anything it cannot parse.
func ParseTrailingPeriod(s string) (time.Duration, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if !strings.HasSuffix(s, "d") {
		return 0, false
	}
	days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || days <= 0 {
		return 0, false
	}
	return time.Duration(days) * 24 * time.Hour, true
}
