package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultFile           = "tracker.yaml"
	DefaultAPIURL         = "https://api.binance.com/api/v3/ticker/price"
	DefaultInterval       = 1000 * time.Millisecond
	DefaultRequestTimeout = 2 * time.Second
	DefaultDatabase       = "prices.db"
	DefaultJournal        = "remember.txt"
	DefaultLogLevel       = "info"
	DefaultWindowWidth    = 500
	DefaultWindowHeight   = 400
)

func (c *Config) applyDefaults() {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.Interval == 0 {
		c.Interval = DefaultInterval
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Journal == "" {
		c.Journal = DefaultJournal
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Window.Width == 0 {
		c.Window.Width = DefaultWindowWidth
	}
	if c.Window.Height == 0 {
		c.Window.Height = DefaultWindowHeight
	}
}
