package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/ducminhle1904/dca-backtester/pkg/types"
)

const (
	klineCategory = "spot"
	klineInterval = "D" // daily candles drive the simulation
	klinePageSize = 1000
)

// GetName returns the name of the price feed
func (c *Client) GetName() string {
	return "Bybit Provider"
}

// FetchPrices implements the PriceFeed contract with daily close prices.
// Bybit returns at most 1000 candles per request, so the window is
// paged forward until covered. Each page goes through the rate limiter
// and the bounded retry policy.
func (c *Client) FetchPrices(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceObservation, error) {
	var observations []types.PriceObservation

	cursor := start
	for !cursor.After(end) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var page []types.PriceObservation
		err := c.Retry(ctx, func() error {
			var fetchErr error
			page, fetchErr = c.fetchKlinePage(ctx, symbol, cursor, end)
			return fetchErr
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch klines for %s: %w", symbol, err)
		}
		if len(page) == 0 {
			break
		}

		observations = append(observations, page...)

		// Advance past the newest candle in the page
		last := page[len(page)-1].Timestamp
		if !last.After(cursor) {
			break
		}
		cursor = last.Add(24 * time.Hour)
	}

	return observations, nil
}

func (c *Client) fetchKlinePage(ctx context.Context, symbol string, start, end time.Time) ([]types.PriceObservation, error) {
	reqParams := map[string]interface{}{
		"category": klineCategory,
		"symbol":   symbol,
		"interval": klineInterval,
		"limit":    klinePageSize,
		"start":    start.UnixMilli(),
		"end":      end.UnixMilli(),
	}

	result, err := c.httpClient.NewUtaBybitServiceWithParams(reqParams).GetMarketKline(ctx)
	if err != nil {
		return nil, err
	}
	return parseKlineResponse(result)
}

// parseKlineResponse converts the API response into observations,
// oldest first.
func parseKlineResponse(response interface{}) ([]types.PriceObservation, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("invalid response type %T", response)
	}
	if serverResp.RetCode != 0 {
		return nil, fmt.Errorf("API error: %s (code: %d)", serverResp.RetMsg, serverResp.RetCode)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var klineResult struct {
		Symbol   string     `json:"symbol"`
		Category string     `json:"category"`
		List     [][]string `json:"list"`
	}
	if err := json.Unmarshal(resultBytes, &klineResult); err != nil {
		return nil, fmt.Errorf("failed to unmarshal kline result: %w", err)
	}

	// Bybit kline format: [startTime, open, high, low, close, volume, turnover],
	// newest first
	var observations []types.PriceObservation
	for i := len(klineResult.List) - 1; i >= 0; i-- {
		item := klineResult.List[i]
		if len(item) < 6 {
			continue
		}

		closePrice := parseFloat64(item[4])
		if closePrice <= 0 {
			continue
		}

		observations = append(observations, types.PriceObservation{
			Timestamp: time.UnixMilli(parseInt64(item[0])),
			Price:     closePrice,
			Volume:    parseFloat64(item[5]),
		})
	}
	return observations, nil
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseFloat64(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
