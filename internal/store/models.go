package store

import (
	"fmt"
	"time"
)

// TimestampLayout is the local, second-precision format stored in the
// timestamp column. Lexical order equals chronological order.
const TimestampLayout = "2006-01-02 15:04:05"

// Snapshot is one saved row of the prices table. Rows are never updated
// or deleted.
type Snapshot struct {
	Timestamp string  `json:"timestamp" gorm:"column:timestamp"`
	BTCPrice  float64 `json:"btc_price" gorm:"column:btc_price"`
	ETHPrice  float64 `json:"eth_price" gorm:"column:eth_price"`
}

// TableName pins the table name used by GORM.
func (Snapshot) TableName() string { return "prices" }

// NewSnapshot stamps the given prices with t in local time.
func NewSnapshot(t time.Time, btc, eth float64) Snapshot {
	return Snapshot{
		Timestamp: t.Local().Format(TimestampLayout),
		BTCPrice:  btc,
		ETHPrice:  eth,
	}
}

// HistoryLine renders the row the way the history view lists it.
func (s Snapshot) HistoryLine() string {
	return fmt.Sprintf("%s | BTC: $%.2f | ETH: $%.2f", s.Timestamp, s.BTCPrice, s.ETHPrice)
}

// JournalEntry renders the block appended to the text log.
func (s Snapshot) JournalEntry() string {
	return fmt.Sprintf("%s\nBTC: $%.2f, ETH: $%.2f\n\n", s.Timestamp, s.BTCPrice, s.ETHPrice)
}
