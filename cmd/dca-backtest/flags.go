package main

import (
	"flag"
	"fmt"
)

// BacktestFlags holds all command line flags for the backtest command
type BacktestFlags struct {
	// Plan configuration
	PlanFile  *string
	Symbol    *string
	Frequency *string
	Amount    *float64
	StartDate *string
	EndDate   *string

	// Data source
	DataFile *string
	Testnet  *bool
	Period   *string

	// Output options
	Output      *string
	JSONOutput  *string
	ConsoleOnly *bool

	// Monitoring
	MetricsAddr *string

	// Environment
	EnvFile *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewBacktestFlags creates and registers all command line flags
func NewBacktestFlags() *BacktestFlags {
	return &BacktestFlags{
		PlanFile:  flag.String("plan", "", "Plan file (.json, .yaml or .yml)"),
		Symbol:    flag.String("symbol", "", "Symbol to backtest (e.g. BTCUSDT); overrides the plan file"),
		Frequency: flag.String("frequency", "", "Investment frequency: daily, weekly, monthly; overrides the plan file"),
		Amount:    flag.Float64("amount", 0, "Investment amount per period; overrides the plan file"),
		StartDate: flag.String("start", "", "Start date (YYYY-MM-DD); overrides the plan file"),
		EndDate:   flag.String("end", "", "End date (YYYY-MM-DD); overrides the plan file"),

		DataFile: flag.String("data", "", "CSV price file; when empty, prices are fetched from Bybit"),
		Testnet:  flag.Bool("testnet", false, "Use Bybit testnet"),
		Period:   flag.String("period", "", "Trailing period filter on loaded data (e.g. 30d, 365d)"),

		Output:      flag.String("output", "", "Trades export path (.csv or .xlsx)"),
		JSONOutput:  flag.String("json-output", "", "Full result export path (.json)"),
		ConsoleOnly: flag.Bool("console-only", false, "Skip file exports"),

		MetricsAddr: flag.String("metrics-addr", "", "Expose prometheus metrics on this address (e.g. :9090)"),

		EnvFile: flag.String("env", ".env", "Environment file"),

		ShowVersion: flag.Bool("version", false, "Show version"),
		ShowHelp:    flag.Bool("help", false, "Show help"),
	}
}

// ValidateBacktestFlags checks flag combinations before running
func ValidateBacktestFlags(flags *BacktestFlags) error {
	if *flags.ShowVersion || *flags.ShowHelp {
		return nil
	}
	if *flags.PlanFile == "" && *flags.Symbol == "" {
		return fmt.Errorf("either -plan or -symbol is required")
	}
	if *flags.PlanFile == "" && (*flags.StartDate == "" || *flags.EndDate == "") {
		return fmt.Errorf("-start and -end are required when no plan file is given")
	}
	if *flags.Amount < 0 {
		return fmt.Errorf("amount must be non-negative, got %.2f", *flags.Amount)
	}
	return nil
}
