package strategy

import (
	"github.com/ducminhle1904/dca-backtester/pkg/types"
)

// TradeIntent is a single trade the strategy wants executed at the
// current tick. Notional is in quote currency; the ledger converts it
// to a quantity at the tick price.
type TradeIntent struct {
	Side     types.TradeSide
	Reason   types.TradeReason
	Notional float64
}

// Strategy classifies price ticks into trade intents
type Strategy interface {
	// Evaluate records the tick and returns the trades to execute, in
	// execution order. regularDue is the scheduler's verdict for this
	// tick; holdings is the coin quantity currently owned.
	Evaluate(tick types.PriceObservation, regularDue bool, holdings float64) []TradeIntent

	// GetName returns the name of the strategy
	GetName() string
}
