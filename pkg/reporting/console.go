package reporting

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ducminhle1904/dca-backtester/internal/backtest"
)

// maxConsoleTrades caps the trade table so long runs stay readable
const maxConsoleTrades = 20

// ConsoleReporter prints backtest results to stdout
type ConsoleReporter struct{}

// NewConsoleReporter creates a new console reporter
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// OutputResults prints the summary table and the most recent trades.
func (r *ConsoleReporter) OutputResults(result *backtest.BacktestResult) {
	fmt.Println("\n" + strings.Repeat("=", 50))
	fmt.Printf("📊 BACKTEST RESULTS - %s\n", result.Symbol)
	fmt.Println(strings.Repeat("=", 50))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"💰 Total Invested", fmt.Sprintf("$%.2f", result.TotalInvested)},
		{"💰 Final Value", fmt.Sprintf("$%.2f", result.FinalValue)},
		{"📈 ROI", fmt.Sprintf("%.2f%%", result.ROI)},
		{"📈 APY", fmt.Sprintf("%.2f%%", result.APY)},
		{"📊 Sharpe Ratio", fmt.Sprintf("%.2f", result.SharpeRatio)},
		{"📊 Volatility", fmt.Sprintf("%.2f%%", result.Volatility)},
		{"📉 Max Drawdown", fmt.Sprintf("%.2f%%", result.MaxDrawdown)},
		{"🔄 Total Trades", fmt.Sprintf("%d", result.TotalTrades)},
		{"🛒 Dip Buys", fmt.Sprintf("%d", result.DipBuys)},
		{"💸 Sells", fmt.Sprintf("%d", result.Sells)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 18, Align: text.AlignLeft},
		{Number: 2, WidthMin: 14, Align: text.AlignRight},
	})
	t.Render()

	r.printTrades(result)
}

func (r *ConsoleReporter) printTrades(result *backtest.BacktestResult) {
	if len(result.Trades) == 0 {
		fmt.Println("\nNo trades executed.")
		return
	}

	trades := result.Trades
	if len(trades) > maxConsoleTrades {
		fmt.Printf("\nLast %d of %d trades:\n", maxConsoleTrades, len(trades))
		trades = trades[len(trades)-maxConsoleTrades:]
	} else {
		fmt.Printf("\nTrades (%d):\n", len(trades))
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Date", "Side", "Price", "Quantity", "Value", "Reason"})
	for _, trade := range trades {
		t.AppendRow(table.Row{
			trade.Timestamp.Format("2006-01-02"),
			strings.ToUpper(trade.Side.String()),
			fmt.Sprintf("$%.2f", trade.Price),
			fmt.Sprintf("%.8f", trade.Quantity),
			fmt.Sprintf("$%.2f", trade.NotionalValue),
			string(trade.Reason),
		})
	}
	t.Render()
}
