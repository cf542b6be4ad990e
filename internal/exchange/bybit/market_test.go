package bybit

import (
	"testing"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func klineResponse(list [][]string) *bybit_api.ServerResponse {
	return &bybit_api.ServerResponse{
		RetCode: 0,
		RetMsg:  "OK",
		Result: map[string]interface{}{
			"symbol":   "BTCUSDT",
			"category": "spot",
			"list":     list,
		},
	}
}

func TestParseKlineResponse_OldestFirst(t *testing.T) {
	// Bybit lists candles newest first
	resp := klineResponse([][]string{
		{"1672704000000", "16800", "17000", "16700", "16900.5", "120.5", "2030000"},
		{"1672617600000", "16600", "16850", "16550", "16800.0", "98.2", "1650000"},
		{"1672531200000", "16500", "16650", "16400", "16600.0", "110.0", "1820000"},
	})

	observations, err := parseKlineResponse(resp)
	require.NoError(t, err)
	require.Len(t, observations, 3)

	assert.Equal(t, time.UnixMilli(1672531200000), observations[0].Timestamp)
	assert.Equal(t, 16600.0, observations[0].Price)
	assert.Equal(t, 110.0, observations[0].Volume)
	assert.Equal(t, 16900.5, observations[2].Price)
	assert.True(t, observations[0].Timestamp.Before(observations[2].Timestamp))
}

func TestParseKlineResponse_SkipsBadCandles(t *testing.T) {
	resp := klineResponse([][]string{
		{"1672704000000", "16800", "17000", "16700", "16900.5", "120.5", "2030000"},
		{"1672617600000", "16600"}, // truncated row
		{"1672531200000", "16500", "16650", "16400", "0", "110.0", "1820000"}, // zero close
	})

	observations, err := parseKlineResponse(resp)
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, 16900.5, observations[0].Price)
}

func TestParseKlineResponse_APIError(t *testing.T) {
	resp := &bybit_api.ServerResponse{RetCode: 10001, RetMsg: "params error"}

	_, err := parseKlineResponse(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "params error")
}

func TestParseKlineResponse_WrongType(t *testing.T) {
	_, err := parseKlineResponse("not a response")
	assert.Error(t, err)
}

func TestParseKlineResponse_EmptyList(t *testing.T) {
	observations, err := parseKlineResponse(klineResponse(nil))
	require.NoError(t, err)
	assert.Empty(t, observations)
}
