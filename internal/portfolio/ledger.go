package portfolio

import (
	"time"

	btErrors "github.com/ducminhle1904/dca-backtester/internal/errors"
	"github.com/ducminhle1904/dca-backtester/pkg/types"
)

// Ledger tracks holdings, net invested capital and the append-only trade
// trail for a single backtest run. It is owned exclusively by the
// orchestrator for the run's lifetime; nothing here is safe for
// concurrent use and nothing needs to be.
type Ledger struct {
	coinQuantity  float64
	totalInvested float64
	trades        []types.TradeRecord
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		trades: make([]types.TradeRecord, 0),
	}
}

// Buy converts a notional amount to coins at the given price and records
// the trade. Price and amount must be positive.
func (l *Ledger) Buy(ts time.Time, price, amount float64, reason types.TradeReason) error {
	if price <= 0 || amount <= 0 {
		return btErrors.New(btErrors.KindTrade, "ledger",
			"buy rejected: price (%.4f) and amount (%.4f) must be positive", price, amount)
	}

	quantity := amount / price
	l.coinQuantity += quantity
	l.totalInvested += amount
	l.trades = append(l.trades, types.NewTradeRecord(ts, types.SideBuy, price, quantity, reason))
	return nil
}

// Sell converts a notional amount to coins at the given price, enforces
// that holdings never go negative, and records the trade. The realized
// amount is subtracted from total invested.
func (l *Ledger) Sell(ts time.Time, price, amount float64, reason types.TradeReason) error {
	if price <= 0 || amount <= 0 {
		return btErrors.New(btErrors.KindTrade, "ledger",
			"sell rejected: price (%.4f) and amount (%.4f) must be positive", price, amount)
	}

	quantity := amount / price
	if quantity > l.coinQuantity {
		return btErrors.New(btErrors.KindHoldings, "ledger",
			"sell of %.8f coins exceeds holdings of %.8f", quantity, l.coinQuantity)
	}

	l.coinQuantity -= quantity
	l.totalInvested -= amount
	l.trades = append(l.trades, types.NewTradeRecord(ts, types.SideSell, price, quantity, reason))
	return nil
}

// CurrentValue is the holdings value at the given price.
func (l *Ledger) CurrentValue(price float64) float64 {
	return l.coinQuantity * price
}

// CoinQuantity returns the coins currently held.
func (l *Ledger) CoinQuantity() float64 {
	return l.coinQuantity
}

// TotalInvested returns net invested capital: buy notionals minus
// realized sell notionals.
func (l *Ledger) TotalInvested() float64 {
	return l.totalInvested
}

// Trades returns a copy of the trade trail so callers cannot mutate the
// ledger's history.
func (l *Ledger) Trades() []types.TradeRecord {
	out := make([]types.TradeRecord, len(l.trades))
	copy(out, l.trades)
	return out
}

// TradeCount returns the number of executed trades.
func (l *Ledger) TradeCount() int {
	return len(l.trades)
}
