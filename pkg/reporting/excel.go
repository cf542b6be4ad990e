package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/dca-backtester/internal/backtest"
)

// ExcelReporter writes full results to an Excel workbook
type ExcelReporter struct{}

// NewExcelReporter creates a new Excel reporter
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// WriteResultXLSX writes summary, trades and value history sheets.
func (r *ExcelReporter) WriteResultXLSX(result *backtest.BacktestResult, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const summarySheet = "Summary"
	const tradesSheet = "Trades"
	const historySheet = "Value History"

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)
	fx.NewSheet(tradesSheet)
	fx.NewSheet(historySheet)

	headerStyle, err := fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summarySheet, result, headerStyle); err != nil {
		return err
	}
	if err := r.writeTradesSheet(fx, tradesSheet, result, headerStyle); err != nil {
		return err
	}
	if err := r.writeHistorySheet(fx, historySheet, result, headerStyle); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, result *backtest.BacktestResult, headerStyle int) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Symbol", result.Symbol},
		{"Total Invested", result.TotalInvested},
		{"Final Value", result.FinalValue},
		{"ROI %", result.ROI},
		{"APY %", result.APY},
		{"Sharpe Ratio", result.SharpeRatio},
		{"Volatility %", result.Volatility},
		{"Max Drawdown %", result.MaxDrawdown},
		{"Total Trades", result.TotalTrades},
		{"Dip Buys", result.DipBuys},
		{"Sells", result.Sells},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return fx.SetCellStyle(sheet, "A1", "B1", headerStyle)
}

func (r *ExcelReporter) writeTradesSheet(fx *excelize.File, sheet string, result *backtest.BacktestResult, headerStyle int) error {
	header := []interface{}{"ID", "Timestamp", "Side", "Price", "Quantity", "Notional Value", "Reason"}
	if err := fx.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, trade := range result.Trades {
		row := []interface{}{
			trade.ID,
			trade.Timestamp.Format("2006-01-02 15:04:05"),
			strings.ToUpper(trade.Side.String()),
			trade.Price,
			trade.Quantity,
			trade.NotionalValue,
			string(trade.Reason),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return fx.SetCellStyle(sheet, "A1", "G1", headerStyle)
}

func (r *ExcelReporter) writeHistorySheet(fx *excelize.File, sheet string, result *backtest.BacktestResult, headerStyle int) error {
	header := []interface{}{"Timestamp", "Portfolio Value", "Invested", "Price"}
	if err := fx.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, point := range result.ValueHistory {
		row := []interface{}{
			point.Timestamp.Format("2006-01-02 15:04:05"),
			point.Value,
			point.Invested,
			point.Price,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return fx.SetCellStyle(sheet, "A1", "D1", headerStyle)
}
