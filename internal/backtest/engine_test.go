package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	btErrors "github.com/ducminhle1904/dca-backtester/internal/errors"
	"github.com/ducminhle1904/dca-backtester/pkg/config"
	"github.com/ducminhle1904/dca-backtester/pkg/types"
)

func newEnginePlan() *config.InvestmentPlan {
	plan := config.NewDefaultPlan()
	plan.Symbol = "BTCUSDT"
	plan.Frequency = config.FrequencyWeekly
	plan.Amount = 100.0
	plan.StartDate = "2023-01-01"
	plan.EndDate = "2023-03-12"
	return plan
}

// dailySeries produces one observation per day starting 2023-01-01.
func dailySeries(prices []float64) []types.PriceObservation {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]types.PriceObservation, len(prices))
	for i, p := range prices {
		out[i] = types.PriceObservation{Timestamp: base.AddDate(0, 0, i), Price: p}
	}
	return out
}

func flatPrices(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}
	return out
}

func TestEngine_RejectsInvalidPlan(t *testing.T) {
	plan := newEnginePlan()
	plan.Amount = -5

	_, err := NewEngine(plan)
	require.Error(t, err)
	assert.True(t, btErrors.IsInvalidPlan(err))
}

func TestEngine_EmptyFeedFails(t *testing.T) {
	engine, err := NewEngine(newEnginePlan())
	require.NoError(t, err)
	assert.Equal(t, StateInitialized, engine.State())

	_, err = engine.Run(nil)
	require.Error(t, err)
	assert.True(t, btErrors.IsNoData(err))
	assert.Equal(t, StateFailed, engine.State())
}

func TestEngine_AllInvalidObservationsFail(t *testing.T) {
	engine, err := NewEngine(newEnginePlan())
	require.NoError(t, err)

	_, err = engine.Run([]types.PriceObservation{
		{Timestamp: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Price: 0},
		{Timestamp: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), Price: -10},
	})
	require.Error(t, err)
	assert.True(t, btErrors.IsNoData(err))
	assert.Equal(t, StateFailed, engine.State())
}

func TestEngine_CompletesOnFlatSeries(t *testing.T) {
	engine, err := NewEngine(newEnginePlan())
	require.NoError(t, err)

	result, err := engine.Run(dailySeries(flatPrices(70, 100.0)))
	require.NoError(t, err)
	assert.Equal(t, StateComplete, engine.State())

	// Weekly buys over 70 daily ticks: days 0, 7, ..., 63
	assert.Equal(t, 10, result.TotalTrades)
	assert.Zero(t, result.DipBuys)
	assert.Zero(t, result.Sells)
	assert.InDelta(t, 1000.0, result.TotalInvested, 1e-9)
	assert.InDelta(t, 1000.0, result.FinalValue, 1e-6)
	assert.InDelta(t, 0.0, result.ROI, 1e-9)
	assert.InDelta(t, 0.0, result.Volatility, 1e-9)
}

func TestEngine_OneValuePointPerTick(t *testing.T) {
	engine, err := NewEngine(newEnginePlan())
	require.NoError(t, err)

	result, err := engine.Run(dailySeries(flatPrices(30, 100.0)))
	require.NoError(t, err)
	require.Len(t, result.ValueHistory, 30)

	for i := 1; i < len(result.ValueHistory); i++ {
		assert.True(t, result.ValueHistory[i].Timestamp.After(result.ValueHistory[i-1].Timestamp))
	}
}

func TestEngine_SortsUnsortedFeed(t *testing.T) {
	engine, err := NewEngine(newEnginePlan())
	require.NoError(t, err)

	ticks := dailySeries(flatPrices(10, 100.0))
	// Reverse the feed before handing it to the engine
	for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
		ticks[i], ticks[j] = ticks[j], ticks[i]
	}

	result, err := engine.Run(ticks)
	require.NoError(t, err)
	require.Len(t, result.ValueHistory, 10)
	assert.True(t, result.ValueHistory[0].Timestamp.Before(result.ValueHistory[9].Timestamp))
}

func TestEngine_DropsInvalidObservations(t *testing.T) {
	engine, err := NewEngine(newEnginePlan())
	require.NoError(t, err)

	ticks := dailySeries(flatPrices(10, 100.0))
	ticks[3].Price = 0
	ticks[7].Price = -1

	result, err := engine.Run(ticks)
	require.NoError(t, err)
	assert.Len(t, result.ValueHistory, 8)
}

func TestEngine_CountsDipBuys(t *testing.T) {
	plan := newEnginePlan()
	plan.DipThreshold = 5
	plan.ReferencePeriodDays = 2
	engine, err := NewEngine(plan)
	require.NoError(t, err)

	// Reference after the drop tick is (100+80)/2 = 90, an 11% drop
	result, err := engine.Run(dailySeries([]float64{100, 80, 80, 80}))
	require.NoError(t, err)

	assert.Equal(t, 1, result.DipBuys)
	// Regular buy on day 0 plus the dip buy on day 1
	assert.Equal(t, 2, result.TotalTrades)
}

func TestEngine_CountsSells(t *testing.T) {
	plan := newEnginePlan()
	plan.EnableSells = true
	plan.ReferencePeriodDays = 2
	plan.RebalancingPct = 10
	plan.RebalancingAmount = 50
	plan.SellCooldownDays = 0
	engine, err := NewEngine(plan)
	require.NoError(t, err)

	result, err := engine.Run(dailySeries([]float64{100, 100, 200}))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Sells)
	sellSeen := false
	for _, trade := range result.Trades {
		if trade.Side == types.SideSell {
			sellSeen = true
			assert.Equal(t, types.ReasonRebalancing, trade.Reason)
		}
	}
	assert.True(t, sellSeen)
}

func TestEngine_ZeroSellAmountPlanCompletes(t *testing.T) {
	plan := newEnginePlan()
	plan.EnableSells = true
	plan.ReferencePeriodDays = 2
	plan.RebalancingPct = 10
	plan.RebalancingAmount = 0
	plan.ProfitTakingPct = 100
	engine, err := NewEngine(plan)
	require.NoError(t, err)

	// The rebalancing trigger fires on the last tick; with a 0% amount
	// the run must complete with no sell instead of failing on a
	// zero-notional trade
	result, err := engine.Run(dailySeries([]float64{100, 100, 200}))
	require.NoError(t, err)
	assert.Equal(t, StateComplete, engine.State())
	assert.Zero(t, result.Sells)
}

func TestEngine_ResultHistoryIsDetached(t *testing.T) {
	engine, err := NewEngine(newEnginePlan())
	require.NoError(t, err)

	result, err := engine.Run(dailySeries(flatPrices(5, 100.0)))
	require.NoError(t, err)

	original := result.ValueHistory[0].Value
	result.ValueHistory[0].Value = -1
	assert.Equal(t, original, engine.history[0].Value)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "initialized", StateInitialized.String())
	assert.Equal(t, "complete", StateComplete.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(99).String())
}
