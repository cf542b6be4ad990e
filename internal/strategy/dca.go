package strategy

import (
	"time"

	"github.com/ducminhle1904/dca-backtester/pkg/config"
	"github.com/ducminhle1904/dca-backtester/pkg/types"
)

// minReferenceObservations is the smallest trailing window the
// reference price may be computed from.
const minReferenceObservations = 2

// DCAStrategy implements periodic investing with opportunistic dip buys
// and conditional sells against a trailing-mean reference price.
//
// Evaluation order per tick is fixed: regular buy, then dip buy, then at
// most one sell. A dip buy supplements the regular buy on the same tick,
// it never replaces it. Among the sell rules stop-loss takes priority
// over rebalancing, which takes priority over profit-taking.
type DCAStrategy struct {
	plan *config.InvestmentPlan

	window   []float64 // trailing prices, newest last, capped at the reference period
	observed int       // total ticks seen, not capped
	lastSell time.Time
	hasSold  bool
}

// NewDCAStrategy creates a strategy for a validated plan.
func NewDCAStrategy(plan *config.InvestmentPlan) *DCAStrategy {
	return &DCAStrategy{
		plan:   plan,
		window: make([]float64, 0, plan.ReferencePeriodDays),
	}
}

func (s *DCAStrategy) GetName() string {
	return "DCA Strategy"
}

// Evaluate records the tick and classifies it into zero or more intents.
func (s *DCAStrategy) Evaluate(tick types.PriceObservation, regularDue bool, holdings float64) []TradeIntent {
	s.observe(tick.Price)

	var intents []TradeIntent

	if regularDue {
		intents = append(intents, TradeIntent{
			Side:     types.SideBuy,
			Reason:   types.ReasonRegular,
			Notional: s.plan.Amount,
		})
	}

	if intent, ok := s.evaluateDip(tick.Price); ok {
		intents = append(intents, intent)
	}

	if intent, ok := s.evaluateSell(tick, holdings); ok {
		intents = append(intents, intent)
		s.lastSell = tick.Timestamp
		s.hasSold = true
	}

	return intents
}

// evaluateDip checks whether the price dropped far enough below the
// reference price to warrant an extra buy. A zero threshold disables
// dip buying, otherwise a flat series would trigger through the
// inclusive comparison.
func (s *DCAStrategy) evaluateDip(price float64) (TradeIntent, bool) {
	if s.plan.DipThreshold <= 0 {
		return TradeIntent{}, false
	}
	reference, ok := s.referencePrice()
	if !ok {
		return TradeIntent{}, false
	}

	dropPct := (reference - price) / reference * 100
	if dropPct < s.plan.DipThreshold {
		return TradeIntent{}, false
	}

	return TradeIntent{
		Side:     types.SideBuy,
		Reason:   types.ReasonDipBuy,
		Notional: s.plan.Amount * (1 + s.plan.DipIncreasePercentage/100),
	}, true
}

// evaluateSell applies the sell rules in priority order. Only the first
// matching rule fires per tick. A rule with a zero sell amount is
// disabled, the same way a zero DipThreshold disables dip buying.
func (s *DCAStrategy) evaluateSell(tick types.PriceObservation, holdings float64) (TradeIntent, bool) {
	if !s.plan.EnableSells || holdings <= 0 {
		return TradeIntent{}, false
	}
	if s.observed < s.plan.ReferencePeriodDays {
		return TradeIntent{}, false
	}
	if !s.cooldownElapsed(tick.Timestamp) {
		return TradeIntent{}, false
	}
	reference, ok := s.referencePrice()
	if !ok {
		return TradeIntent{}, false
	}

	changePct := (tick.Price - reference) / reference * 100
	holdingsValue := holdings * tick.Price

	switch {
	case s.plan.StopLossPct > 0 && s.plan.StopLossAmount > 0 && changePct <= -s.plan.StopLossPct:
		return TradeIntent{
			Side:     types.SideSell,
			Reason:   types.ReasonStopLoss,
			Notional: holdingsValue * s.plan.StopLossAmount / 100,
		}, true
	case s.plan.RebalancingAmount > 0 && changePct >= s.plan.RebalancingPct:
		return TradeIntent{
			Side:     types.SideSell,
			Reason:   types.ReasonRebalancing,
			Notional: holdingsValue * s.plan.RebalancingAmount / 100,
		}, true
	case s.plan.ProfitTakingAmount > 0 && changePct >= s.plan.ProfitTakingPct:
		return TradeIntent{
			Side:     types.SideSell,
			Reason:   types.ReasonProfitTaking,
			Notional: holdingsValue * s.plan.ProfitTakingAmount / 100,
		}, true
	}
	return TradeIntent{}, false
}

func (s *DCAStrategy) observe(price float64) {
	s.window = append(s.window, price)
	if len(s.window) > s.plan.ReferencePeriodDays {
		s.window = s.window[1:]
	}
	s.observed++
}

// referencePrice is the arithmetic mean of the trailing window,
// including the current tick. Requires at least two observations.
func (s *DCAStrategy) referencePrice() (float64, bool) {
	if len(s.window) < minReferenceObservations {
		return 0, false
	}
	sum := 0.0
	for _, p := range s.window {
		sum += p
	}
	mean := sum / float64(len(s.window))
	if mean <= 0 {
		return 0, false
	}
	return mean, true
}

func (s *DCAStrategy) cooldownElapsed(t time.Time) bool {
	if !s.hasSold || s.plan.SellCooldownDays <= 0 {
		return true
	}
	return t.Sub(s.lastSell) >= time.Duration(s.plan.SellCooldownDays)*24*time.Hour
}
