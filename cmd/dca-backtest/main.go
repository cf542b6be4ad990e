package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ducminhle1904/dca-backtester/internal/backtest"
	"github.com/ducminhle1904/dca-backtester/internal/exchange/bybit"
	"github.com/ducminhle1904/dca-backtester/internal/monitoring"
	"github.com/ducminhle1904/dca-backtester/pkg/config"
	"github.com/ducminhle1904/dca-backtester/pkg/data"
	"github.com/ducminhle1904/dca-backtester/pkg/reporting"
)

const (
	AppName    = "DCA Backtester"
	AppVersion = "1.0.0"
)

func main() {
	flags := NewBacktestFlags()
	flag.Parse()

	if err := ValidateBacktestFlags(flags); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}
	if *flags.ShowHelp {
		flag.Usage()
		return
	}

	printHeader()
	loadEnvironment(*flags.EnvFile)

	if *flags.MetricsAddr != "" {
		startMetricsServer(*flags.MetricsAddr)
	}

	plan, err := loadPlan(flags)
	if err != nil {
		log.Fatalf("❌ Plan error: %v", err)
	}

	feed, err := buildPriceFeed(flags)
	if err != nil {
		log.Fatalf("❌ Price feed error: %v", err)
	}
	fmt.Printf("📡 Price source: %s\n", feed.GetName())

	result, err := runBacktest(plan, feed, *flags.Period)
	if err != nil {
		monitoring.RecordFailure(plan.Symbol)
		log.Fatalf("❌ Backtest failed: %v", err)
	}

	reporting.NewConsoleReporter().OutputResults(result)

	if !*flags.ConsoleOnly {
		exportResults(result, *flags.Output, *flags.JSONOutput)
	}
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

func startMetricsServer(addr string) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", monitoring.Handler())
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("⚠️  Metrics server stopped: %v", err)
		}
	}()
	fmt.Printf("📈 Prometheus metrics on %s/metrics\n", addr)
}

// loadPlan builds the plan from a file, flags, or both. Flags override
// file values.
func loadPlan(flags *BacktestFlags) (*config.InvestmentPlan, error) {
	var plan *config.InvestmentPlan
	if *flags.PlanFile != "" {
		loaded, err := config.NewPlanManager().LoadPlan(*flags.PlanFile)
		if err != nil {
			return nil, err
		}
		plan = loaded
	} else {
		plan = config.NewDefaultPlan()
	}

	if *flags.Symbol != "" {
		plan.Symbol = *flags.Symbol
	}
	if *flags.Frequency != "" {
		freq, err := config.ParseFrequency(*flags.Frequency)
		if err != nil {
			return nil, err
		}
		plan.Frequency = freq
	}
	if *flags.Amount > 0 {
		plan.Amount = *flags.Amount
	}
	if *flags.StartDate != "" {
		plan.StartDate = *flags.StartDate
	}
	if *flags.EndDate != "" {
		plan.EndDate = *flags.EndDate
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func buildPriceFeed(flags *BacktestFlags) (data.PriceFeed, error) {
	if *flags.DataFile != "" {
		if _, err := os.Stat(*flags.DataFile); err != nil {
			return nil, fmt.Errorf("data file %s: %w", *flags.DataFile, err)
		}
		return data.NewCSVProviderWithFormat(*flags.DataFile, data.DailyCloseCSVFormat), nil
	}

	return bybit.NewClient(bybit.Config{
		APIKey:    os.Getenv("BYBIT_API_KEY"),
		APISecret: os.Getenv("BYBIT_API_SECRET"),
		Testnet:   *flags.Testnet,
	}), nil
}

func runBacktest(plan *config.InvestmentPlan, feed data.PriceFeed, period string) (*backtest.BacktestResult, error) {
	start, end, err := plan.Window()
	if err != nil {
		return nil, err
	}

	prices, err := feed.FetchPrices(context.Background(), plan.Symbol, start, end)
	if err != nil {
		return nil, err
	}

	if period != "" {
		d, ok := data.ParseTrailingPeriod(period)
		if !ok {
			return nil, fmt.Errorf("invalid period format: %s (use 7d, 30d, 365d)", period)
		}
		prices = data.NewDefaultDataFilter().FilterByPeriod(prices, d)
	}

	engine, err := backtest.NewEngine(plan)
	if err != nil {
		return nil, err
	}

	runStart := time.Now()
	result, err := engine.Run(prices)
	if err != nil {
		return nil, err
	}
	monitoring.RecordRun(result, time.Since(runStart).Seconds())

	return result, nil
}

func exportResults(result *backtest.BacktestResult, tradesPath, jsonPath string) {
	if tradesPath != "" {
		if err := reporting.NewCSVReporter().WriteTradesCSV(result, tradesPath); err != nil {
			log.Printf("⚠️  Could not write trades to %s: %v", tradesPath, err)
		} else {
			fmt.Printf("💾 Trades written to %s\n", tradesPath)
		}
	}
	if jsonPath != "" {
		if err := reporting.NewJSONReporter().WriteResultJSON(result, jsonPath); err != nil {
			log.Printf("⚠️  Could not write result to %s: %v", jsonPath, err)
		} else {
			fmt.Printf("💾 Result written to %s\n", jsonPath)
		}
	}
}
