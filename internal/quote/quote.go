package quote

import (
	"strings"
	"time"
)

// Sources reported on Quote.Source and IndexValue.Source.
const (
	SourceSynthetic    = "synthetic"
	SourceAlphaVantage = "alphavantage"
)

// indexKeyPrefix keeps index cache keys apart from stock keys so a symbol
// queried in both spaces never collides.
const indexKeyPrefix = "index:"

// Quote is a single stock quote as served to the dashboard.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	DayLow        float64   `json:"dayLow"`
	DayHigh       float64   `json:"dayHigh"`
	Week52Low     float64   `json:"week52Low"`
	Week52High    float64   `json:"week52High"`
	Volume        int64     `json:"volume"`
	MarketCap     float64   `json:"marketCap"`
	PERatio       float64   `json:"peRatio"`
	DividendYield float64   `json:"dividendYield"`
	LastUpdated   time.Time `json:"lastUpdated"`
	Source        string    `json:"source"`
}

// IndexValue is a market index level. It carries no volume or fundamentals.
type IndexValue struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	LastUpdated   time.Time `json:"lastUpdated"`
	Source        string    `json:"source"`
}

// Stats summarizes process-local service state for health reporting.
type Stats struct {
	RequestsRemaining int
	CacheEntries      int
}

// NormalizeSymbol trims and upper-cases a symbol. Caret-prefixed index
// symbols such as ^GSPC are kept as opaque keys.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// StockKey returns the cache key for a normalized stock symbol.
func StockKey(symbol string) string { return symbol }

// IndexKey returns the cache key for a normalized index symbol.
func IndexKey(symbol string) string { return indexKeyPrefix + symbol }
