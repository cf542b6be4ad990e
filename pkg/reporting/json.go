package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ducminhle1904/dca-backtester/internal/backtest"
)

// JSONReporter writes the full result snapshot as indented JSON
type JSONReporter struct{}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

// WriteResultJSON writes the result to a JSON file.
func (r *JSONReporter) WriteResultJSON(result *backtest.BacktestResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// FormatResult formats the result as JSON bytes.
func (r *JSONReporter) FormatResult(result *backtest.BacktestResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
