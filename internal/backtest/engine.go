package backtest

import (
	"fmt"
	"log"
	"sort"

	btErrors "github.com/ducminhle1904/dca-backtester/internal/errors"
	"github.com/ducminhle1904/dca-backtester/internal/portfolio"
	"github.com/ducminhle1904/dca-backtester/internal/strategy"
	"github.com/ducminhle1904/dca-backtester/pkg/config"
	"github.com/ducminhle1904/dca-backtester/pkg/types"
)

// State is the engine's lifecycle phase. Complete and Failed are
// terminal; Failed can be reached from any state on a validation or
// data error.
type State int

const (
	StateInitialized State = iota
	StateValidating
	StateRunning
	StateFinalizing
	StateComplete
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateValidating:
		return "validating"
	case StateRunning:
		return "running"
	case StateFinalizing:
		return "finalizing"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Engine drives the per-tick simulation loop: it validates the plan and
// price feed, invokes the scheduler and strategy per tick, settles trade
// intents against the ledger, and assembles the final result. The loop
// is strictly forward; no tick is revisited.
type Engine struct {
	plan      *config.InvestmentPlan
	scheduler *strategy.InvestmentScheduler
	strategy  strategy.Strategy
	ledger    *portfolio.Ledger
	state     State

	history ValueHistory
	dipBuys int
	sells   int
}

// NewEngine validates the plan and wires up a fresh scheduler, strategy
// and ledger for one run.
func NewEngine(plan *config.InvestmentPlan) (*Engine, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	start, end, err := plan.Window()
	if err != nil {
		return nil, err
	}
	scheduler, err := strategy.NewInvestmentScheduler(start, end, plan.Frequency)
	if err != nil {
		return nil, err
	}

	return &Engine{
		plan:      plan,
		scheduler: scheduler,
		strategy:  strategy.NewDCAStrategy(plan),
		ledger:    portfolio.NewLedger(),
		state:     StateInitialized,
		history:   make(ValueHistory, 0),
	}, nil
}

// State returns the engine's current lifecycle phase.
func (e *Engine) State() State {
	return e.state
}

// Run replays the price series against the plan and returns the result.
// The input may be unsorted; it is sorted by timestamp before the loop.
// Errors leave the engine in the Failed state and propagate unwrapped to
// the caller; nothing is retried here.
func (e *Engine) Run(prices []types.PriceObservation) (*BacktestResult, error) {
	e.state = StateValidating

	ticks, err := e.validateFeed(prices)
	if err != nil {
		e.state = StateFailed
		return nil, err
	}

	e.state = StateRunning
	for _, tick := range ticks {
		if err := e.processTick(tick); err != nil {
			e.state = StateFailed
			return nil, err
		}
	}

	e.state = StateFinalizing
	result := e.assembleResult()

	e.state = StateComplete
	return result, nil
}

// validateFeed drops unusable observations and sorts the remainder in
// ascending timestamp order.
func (e *Engine) validateFeed(prices []types.PriceObservation) ([]types.PriceObservation, error) {
	if len(prices) == 0 {
		return nil, btErrors.New(btErrors.KindData, "engine", "price feed is empty")
	}

	ticks := make([]types.PriceObservation, 0, len(prices))
	dropped := 0
	for _, p := range prices {
		if !p.Valid() {
			dropped++
			continue
		}
		ticks = append(ticks, p)
	}
	if dropped > 0 {
		log.Printf("⚠️  Dropped %d observations with non-positive prices", dropped)
	}
	if len(ticks) == 0 {
		return nil, btErrors.New(btErrors.KindData, "engine", "price feed has no usable observations")
	}

	sort.SliceStable(ticks, func(i, j int) bool {
		return ticks[i].Timestamp.Before(ticks[j].Timestamp)
	})
	return ticks, nil
}

// processTick runs one observation through scheduler, strategy and
// ledger, then appends the settled portfolio state to the history.
func (e *Engine) processTick(tick types.PriceObservation) error {
	due := e.scheduler.Due(tick.Timestamp)

	intents := e.strategy.Evaluate(tick, due, e.ledger.CoinQuantity())
	for _, intent := range intents {
		if err := e.execute(tick, intent); err != nil {
			return err
		}
	}
	if due {
		e.scheduler.MarkInvested(tick.Timestamp)
	}

	e.history = append(e.history, ValuePoint{
		Timestamp: tick.Timestamp,
		Value:     e.ledger.CurrentValue(tick.Price),
		Invested:  e.ledger.TotalInvested(),
		Price:     tick.Price,
	})
	return nil
}

func (e *Engine) execute(tick types.PriceObservation, intent strategy.TradeIntent) error {
	switch intent.Side {
	case types.SideBuy:
		if err := e.ledger.Buy(tick.Timestamp, tick.Price, intent.Notional, intent.Reason); err != nil {
			return err
		}
		if intent.Reason == types.ReasonDipBuy {
			e.dipBuys++
		}
	case types.SideSell:
		if err := e.ledger.Sell(tick.Timestamp, tick.Price, intent.Notional, intent.Reason); err != nil {
			return err
		}
		e.sells++
	default:
		return fmt.Errorf("unknown trade side %v", intent.Side)
	}
	return nil
}

func (e *Engine) assembleResult() *BacktestResult {
	// The result owns its own copy of the history so no live reference
	// into the engine escapes to callers.
	history := make(ValueHistory, len(e.history))
	copy(history, e.history)

	result := &BacktestResult{
		Symbol:        e.plan.Symbol,
		TotalInvested: e.ledger.TotalInvested(),
		TotalTrades:   e.ledger.TradeCount(),
		DipBuys:       e.dipBuys,
		Sells:         e.sells,
		Trades:        e.ledger.Trades(),
		ValueHistory:  history,
	}
	if len(e.history) > 0 {
		result.FinalValue = e.history[len(e.history)-1].Value
	}
	result.UpdateMetrics()
	return result
}
