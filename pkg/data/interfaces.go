package data

import (
	"context"
	"time"

	"github.com/ducminhle1904/dca-backtester/pkg/types"
)

// PriceFeed is the one capability the engine depends on for historical
// prices. Implementations may return unsorted data; the engine sorts.
type PriceFeed interface {
	// FetchPrices loads observations for the symbol within [start, end]
	FetchPrices(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceObservation, error)

	// GetName returns the name of the price feed
	GetName() string
}

// DataFilter filters and validates observation series
type DataFilter interface {
	// FilterByPeriod keeps the trailing period of the series
	FilterByPeriod(data []types.PriceObservation, period time.Duration) []types.PriceObservation

	// FilterByDateRange keeps observations within [start, end]
	FilterByDateRange(data []types.PriceObservation, start, end time.Time) []types.PriceObservation

	// ValidateTimeSequence ensures data is in chronological order
	ValidateTimeSequence(data []types.PriceObservation) error
}

// CSVColumnMapping defines the column positions for price CSV files
type CSVColumnMapping struct {
	TimestampCol int
	PriceCol     int
	VolumeCol    int // -1 when the file has no volume column
	MinColumns   int
	DateFormat   string
}

// Predefined CSV formats
var (
	// DefaultCSVFormat matches "timestamp,price,volume" exports
	DefaultCSVFormat = CSVColumnMapping{
		TimestampCol: 0,
		PriceCol:     1,
		VolumeCol:    2,
		MinColumns:   3,
		DateFormat:   "2006-01-02 15:04:05",
	}

	// DailyCloseCSVFormat matches "date,close" daily exports
	DailyCloseCSVFormat = CSVColumnMapping{
		TimestampCol: 0,
		PriceCol:     1,
		VolumeCol:    -1,
		MinColumns:   2,
		DateFormat:   "2006-01-02",
	}
)
