package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TradeSide represents the direction of a trade
type TradeSide int

const (
	SideBuy TradeSide = iota
	SideSell
)

func (s TradeSide) String() string {
	switch s {
	case SideBuy:
		return "buy"
	case SideSell:
		return "sell"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the side as its string form.
func (s TradeSide) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a "buy"/"sell" string back into a side.
func (s *TradeSide) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v {
	case "buy":
		*s = SideBuy
	case "sell":
		*s = SideSell
	default:
		return fmt.Errorf("unknown trade side %q", v)
	}
	return nil
}

// TradeReason classifies why a trade was executed
type TradeReason string

const (
	ReasonRegular      TradeReason = "regular"
	ReasonDipBuy       TradeReason = "dip_buy"
	ReasonProfitTaking TradeReason = "profit_taking"
	ReasonRebalancing  TradeReason = "rebalancing"
	ReasonStopLoss     TradeReason = "stop_loss"
)

// IsSellReason reports whether the reason only applies to sell trades.
func (r TradeReason) IsSellReason() bool {
	switch r {
	case ReasonProfitTaking, ReasonRebalancing, ReasonStopLoss:
		return true
	}
	return false
}

// TradeRecord is a single executed trade in the simulation ledger.
// Records are append-only and never mutated after creation.
type TradeRecord struct {
	ID            string      `json:"id"`
	Timestamp     time.Time   `json:"timestamp"`
	Side          TradeSide   `json:"side"`
	Price         float64     `json:"price"`
	Quantity      float64     `json:"quantity"`
	NotionalValue float64     `json:"notional_value"`
	Reason        TradeReason `json:"reason"`
}

// NewTradeRecord builds a trade record with a fresh ID.
// NotionalValue always equals Quantity * Price.
func NewTradeRecord(ts time.Time, side TradeSide, price, quantity float64, reason TradeReason) TradeRecord {
	return TradeRecord{
		ID:            uuid.New().String(),
		Timestamp:     ts,
		Side:          side,
		Price:         price,
		Quantity:      quantity,
		NotionalValue: quantity * price,
		Reason:        reason,
	}
}
