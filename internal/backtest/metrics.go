package backtest

import (
	"math"
	"time"
)

const (
	tradingDaysPerYear = 252
	calendarDaysInYear = 365.0

	// zeroValueEpsilon substitutes a zero previous value in the daily
	// returns series so degenerate histories don't divide by zero.
	zeroValueEpsilon = 1e-9
)

// UpdateMetrics derives ROI, APY, Sharpe ratio, volatility and max
// drawdown from the value history and net invested capital. All metrics
// are 0 when fewer than two history points exist; degenerate inputs
// (zero invested, zero variance) yield 0 rather than NaN.
func (r *BacktestResult) UpdateMetrics() {
	r.ROI = r.calculateROI()
	r.APY = r.calculateAPY()

	returns := r.dailyReturns()
	mean, stdev := meanStdev(returns)

	if stdev > 0 {
		r.SharpeRatio = mean / stdev * math.Sqrt(tradingDaysPerYear)
		r.Volatility = stdev * math.Sqrt(tradingDaysPerYear) * 100
	} else {
		r.SharpeRatio = 0
		r.Volatility = 0
	}

	r.MaxDrawdown = r.calculateMaxDrawdown()
}

func (r *BacktestResult) calculateROI() float64 {
	if len(r.ValueHistory) < 2 || r.TotalInvested <= 0 {
		return 0
	}
	return (r.FinalValue - r.TotalInvested) / r.TotalInvested * 100
}

// calculateAPY compound-annualizes ROI over the elapsed calendar days
// between the first and last tick.
func (r *BacktestResult) calculateAPY() float64 {
	if len(r.ValueHistory) < 2 {
		return 0
	}
	if r.ROI <= -100 {
		return -100
	}

	first := r.ValueHistory[0].Timestamp
	last := r.ValueHistory[len(r.ValueHistory)-1].Timestamp
	days := last.Sub(first).Hours() / 24
	if days < 1 {
		days = 1
	}

	return (math.Pow(1+r.ROI/100, calendarDaysInYear/days) - 1) * 100
}

// dailyReturns builds the per-tick return series from the value history.
// Contribution and withdrawal flows are netted out via the invested
// deltas, so scheduled buy-ins do not register as portfolio returns.
func (r *BacktestResult) dailyReturns() []float64 {
	if len(r.ValueHistory) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(r.ValueHistory)-1)
	for i := 1; i < len(r.ValueHistory); i++ {
		prev := r.ValueHistory[i-1].Value
		if prev == 0 {
			prev = zeroValueEpsilon
		}
		flow := r.ValueHistory[i].Invested - r.ValueHistory[i-1].Invested
		returns = append(returns, (r.ValueHistory[i].Value-prev-flow)/prev)
	}
	return returns
}

func (r *BacktestResult) calculateMaxDrawdown() float64 {
	if len(r.ValueHistory) < 2 {
		return 0
	}

	maxDD := 0.0
	peak := 0.0
	for _, point := range r.ValueHistory {
		if point.Value > peak {
			peak = point.Value
		}
		if peak <= 0 {
			continue
		}
		dd := (peak - point.Value) / peak * 100
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// meanStdev returns the mean and population standard deviation.
func meanStdev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

// Duration is the elapsed time between the first and last tick.
func (r *BacktestResult) Duration() time.Duration {
	if len(r.ValueHistory) < 2 {
		return 0
	}
	return r.ValueHistory[len(r.ValueHistory)-1].Timestamp.Sub(r.ValueHistory[0].Timestamp)
}
