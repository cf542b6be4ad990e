package backtest

import (
	"time"

	"github.com/ducminhle1904/dca-backtester/pkg/types"
)

// ValuePoint is one entry of the portfolio value history, recorded after
// each tick's trades settle.
type ValuePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Invested  float64   `json:"invested"`
	Price     float64   `json:"price"`
}

// ValueHistory is the per-tick record of portfolio value, cumulative
// invested amount and observed price. It is built incrementally by the
// engine and never retroactively edited.
type ValueHistory []ValuePoint

// Values extracts the portfolio value series.
func (h ValueHistory) Values() []float64 {
	out := make([]float64, len(h))
	for i, p := range h {
		out[i] = p.Value
	}
	return out
}

// BacktestResult is the final immutable snapshot of a run. Percentages
// (ROI, APY, Volatility, MaxDrawdown) are whole percents.
type BacktestResult struct {
	Symbol        string              `json:"symbol"`
	ROI           float64             `json:"roi"`
	APY           float64             `json:"apy"`
	SharpeRatio   float64             `json:"sharpe_ratio"`
	Volatility    float64             `json:"volatility"`
	MaxDrawdown   float64             `json:"max_drawdown"`
	TotalInvested float64             `json:"total_invested"`
	FinalValue    float64             `json:"final_value"`
	TotalTrades   int                 `json:"number_of_trades"`
	DipBuys       int                 `json:"dip_buys"`
	Sells         int                 `json:"sells"`
	Trades        []types.TradeRecord `json:"trades"`
	ValueHistory  ValueHistory        `json:"portfolio_value_history"`
}
