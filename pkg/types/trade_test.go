package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeSide_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(SideSell)
	require.NoError(t, err)
	assert.Equal(t, `"sell"`, string(data))

	var side TradeSide
	require.NoError(t, json.Unmarshal([]byte(`"buy"`), &side))
	assert.Equal(t, SideBuy, side)

	assert.Error(t, json.Unmarshal([]byte(`"short"`), &side))
	assert.Error(t, json.Unmarshal([]byte(`7`), &side))
}

func TestTradeReason_IsSellReason(t *testing.T) {
	assert.False(t, ReasonRegular.IsSellReason())
	assert.False(t, ReasonDipBuy.IsSellReason())
	assert.True(t, ReasonProfitTaking.IsSellReason())
	assert.True(t, ReasonRebalancing.IsSellReason())
	assert.True(t, ReasonStopLoss.IsSellReason())
}

func TestNewTradeRecord(t *testing.T) {
	ts := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	record := NewTradeRecord(ts, SideBuy, 200.0, 0.5, ReasonRegular)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, ts, record.Timestamp)
	assert.Equal(t, SideBuy, record.Side)
	assert.InDelta(t, 100.0, record.NotionalValue, 1e-9)

	other := NewTradeRecord(ts, SideBuy, 200.0, 0.5, ReasonRegular)
	assert.NotEqual(t, record.ID, other.ID)
}

func TestPriceObservation_Valid(t *testing.T) {
	ts := time.Now()
	assert.True(t, PriceObservation{Timestamp: ts, Price: 0.01}.Valid())
	assert.False(t, PriceObservation{Timestamp: ts, Price: 0}.Valid())
	assert.False(t, PriceObservation{Timestamp: ts, Price: -1}.Valid())
}
