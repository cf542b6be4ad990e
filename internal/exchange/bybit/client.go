package bybit

import (
	bybit_api "github.com/bybit-exchange/bybit.go.api"
	"golang.org/x/time/rate"
)

// Bybit allows 120 public market-data requests per minute
const marketRequestsPerSec = 2

// Client wraps the Bybit API client with rate limiting and retries.
// Only the public kline read path is used; no authenticated endpoints
// are touched, so keys are optional.
type Client struct {
	httpClient *bybit_api.Client
	limiter    *rate.Limiter
	testnet    bool
}

// Config holds the configuration for the Bybit client
type Config struct {
	APIKey    string
	APISecret string
	Testnet   bool
}

// NewClient creates a new Bybit client
func NewClient(config Config) *Client {
	baseURL := bybit_api.MAINNET
	if config.Testnet {
		baseURL = bybit_api.TESTNET
	}

	httpClient := bybit_api.NewBybitHttpClient(
		config.APIKey,
		config.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(marketRequestsPerSec, 5),
		testnet:    config.Testnet,
	}
}

// IsTestnet returns whether the client is configured for testnet
func (c *Client) IsTestnet() bool {
	return c.testnet
}
