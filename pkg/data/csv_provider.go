package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ducminhle1904/dca-backtester/pkg/types"
)

// CSVProvider implements PriceFeed for local CSV files. The symbol
// argument of FetchPrices is ignored; the file is the source of truth.
type CSVProvider struct {
	path   string
	format CSVColumnMapping
}

// NewCSVProvider creates a CSV price feed with the default format
func NewCSVProvider(path string) *CSVProvider {
	return &CSVProvider{path: path, format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a CSV price feed with a custom format
func NewCSVProviderWithFormat(path string, format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{path: path, format: format}
}

// GetName returns the name of the price feed
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// FetchPrices loads observations from the file and clips them to
// [start, end]. Rows with malformed or non-positive values are skipped
// with a warning rather than failing the whole load.
func (p *CSVProvider) FetchPrices(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceObservation, error) {
	file, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("could not open price file %s: %w", p.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("could not read CSV header: %w", err)
	}

	var observations []types.PriceObservation

	lineNum := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %v", lineNum, err)
		}
		lineNum++

		if len(record) < p.format.MinColumns {
			log.Printf("⚠️ Insufficient columns at line %d (expected %d, got %d), skipping",
				lineNum, p.format.MinColumns, len(record))
			continue
		}

		timestamp, err := time.Parse(p.format.DateFormat, record[p.format.TimestampCol])
		if err != nil {
			log.Printf("⚠️ Invalid timestamp '%s' at line %d, skipping: %v",
				record[p.format.TimestampCol], lineNum, err)
			continue
		}

		price, err := strconv.ParseFloat(record[p.format.PriceCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid price '%s' at line %d, skipping: %v",
				record[p.format.PriceCol], lineNum, err)
			continue
		}
		if price <= 0 {
			log.Printf("⚠️ Non-positive price at line %d, skipping", lineNum)
			continue
		}

		volume := 0.0
		if p.format.VolumeCol >= 0 && p.format.VolumeCol < len(record) {
			if v, err := strconv.ParseFloat(record[p.format.VolumeCol], 64); err == nil {
				volume = v
			}
		}

		if timestamp.Before(start) || timestamp.After(end) {
			continue
		}

		observations = append(observations, types.PriceObservation{
			Timestamp: timestamp,
			Price:     price,
			Volume:    volume,
		})
	}

	return observations, nil
}
