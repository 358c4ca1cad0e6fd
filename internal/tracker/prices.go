package tracker

import (
	"fmt"

	"pricetracker/internal/ticker"
)

// Prices is the last successfully fetched price per asset.
type Prices map[string]float64

func newPrices() Prices {
	p := make(Prices, len(ticker.TrackedPairs))
	for _, pair := range ticker.TrackedPairs {
		p[pair.Asset] = 0
	}
	return p
}

func (p Prices) apply(q ticker.Quote) {
	for asset, price := range q.Prices() {
		p[asset] = price
	}
}

// HasData reports whether at least one fetch has landed.
func (p Prices) HasData() bool {
	return p[ticker.BTC] != 0
}

// FormatStatus renders the two-line status label text.
func FormatStatus(btc, eth float64) string {
	return fmt.Sprintf("BTC: $%.2f\nETH: $%.2f", btc, eth)
}
