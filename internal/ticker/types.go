package ticker

import "github.com/shopspring/decimal"

// Asset keys used for the in-memory price map.
const (
	BTC = "BTC"
	ETH = "ETH"
)

// Pair binds an asset key to the exchange symbol it is quoted under.
type Pair struct {
	Asset  string
	Symbol string
}

// TrackedPairs is the fixed set of symbols polled on every tick.
var TrackedPairs = []Pair{
	{Asset: BTC, Symbol: "BTCUSDT"},
	{Asset: ETH, Symbol: "ETHUSDT"},
}

// Response is the body of /api/v3/ticker/price. Binance sends the price
// as a quoted string; decimal accepts both quoted and bare numbers.
type Response struct {
	Symbol string           `json:"symbol"`
	Price  *decimal.Decimal `json:"price"`
}

// Quote holds one successful fetch of both tracked assets.
type Quote struct {
	BTC float64
	ETH float64
}

// Prices returns the quote keyed by asset.
func (q Quote) Prices() map[string]float64 {
	return map[string]float64{BTC: q.BTC, ETH: q.ETH}
}
