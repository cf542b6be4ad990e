package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ducminhle1904/dca-backtester/internal/backtest"
)

// CSVReporter writes trade ledgers to CSV files
type CSVReporter struct{}

// NewCSVReporter creates a new CSV reporter
func NewCSVReporter() *CSVReporter {
	return &CSVReporter{}
}

// WriteTradesCSV writes the trade ledger to a CSV file. Paths ending in
// .xlsx are delegated to the Excel writer.
func (r *CSVReporter) WriteTradesCSV(result *backtest.BacktestResult, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return NewExcelReporter().WriteResultXLSX(result, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"ID", "Timestamp", "Side", "Price", "Quantity", "NotionalValue", "Reason"}); err != nil {
		return err
	}

	for _, trade := range result.Trades {
		record := []string{
			trade.ID,
			trade.Timestamp.Format("2006-01-02 15:04:05"),
			trade.Side.String(),
			fmt.Sprintf("%.8f", trade.Price),
			fmt.Sprintf("%.8f", trade.Quantity),
			fmt.Sprintf("%.8f", trade.NotionalValue),
			string(trade.Reason),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return nil
}
