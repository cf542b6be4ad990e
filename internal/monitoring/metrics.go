package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ducminhle1904/dca-backtester/internal/backtest"
)

var (
	backtestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dca_backtester_runs_total",
			Help: "Total number of backtest runs",
		},
		[]string{"symbol", "status"},
	)

	backtestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dca_backtester_run_seconds",
			Help:    "Wall-clock duration of backtest runs",
			Buckets: prometheus.DefBuckets,
		},
	)

	simulatedTrades = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dca_backtester_trades_total",
			Help: "Total number of simulated trades",
		},
		[]string{"symbol", "side", "reason"},
	)

	lastROI = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dca_backtester_last_roi_percent",
			Help: "ROI of the most recent backtest run",
		},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(backtestsTotal)
	prometheus.MustRegister(backtestDuration)
	prometheus.MustRegister(simulatedTrades)
	prometheus.MustRegister(lastROI)
}

// RecordRun records the outcome of one backtest run.
func RecordRun(result *backtest.BacktestResult, durationSeconds float64) {
	backtestsTotal.WithLabelValues(result.Symbol, "complete").Inc()
	backtestDuration.Observe(durationSeconds)
	lastROI.WithLabelValues(result.Symbol).Set(result.ROI)

	for _, trade := range result.Trades {
		simulatedTrades.WithLabelValues(result.Symbol, trade.Side.String(), string(trade.Reason)).Inc()
	}
}

// RecordFailure records a run that ended in the failed state.
func RecordFailure(symbol string) {
	backtestsTotal.WithLabelValues(symbol, "failed").Inc()
}

// Handler returns the HTTP handler exposing the metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
