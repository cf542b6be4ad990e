package types

import "time"

// PriceObservation is a single point of an asset price series.
// Observations are produced by a price feed and consumed in
// ascending-timestamp order.
type PriceObservation struct {
	Timestamp time.Time
	Price     float64
	Volume    float64
}

// Valid reports whether the observation carries a usable price.
func (p PriceObservation) Valid() bool {
	return p.Price > 0
}
