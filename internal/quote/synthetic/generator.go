// Package synthetic builds plausible quotes without network access. The
// values are a cost-saving approximation centered on a static base table.
package synthetic

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"quoteservice/internal/quote"
)

// Perturbation bounds applied to base prices.
const (
	StockVariance = 0.03
	IndexVariance = 0.02
)

const (
	dayRange     = 0.02
	week52Low    = 0.7
	week52High   = 1.3
	minVolume    = 5_000_000
	volumeSpread = 50_000_000
	maxDividend  = 3.0
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// Rand is the random source used for perturbation. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Generator produces synthetic quotes and index values. It is safe for
// concurrent use.
type Generator struct {
	now func() time.Time

	mu  sync.Mutex
	rnd Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces time.Now for LastUpdated stamps.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New returns a generator drawing from rnd.
func New(rnd Rand, opts ...Option) *Generator {
	g := &Generator{rnd: rnd, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Stock returns a synthetic quote for a normalized symbol.
func (g *Generator) Stock(symbol string) quote.Quote {
	b := stockBaseFor(symbol)

	g.mu.Lock()
	factor := g.perturbation(StockVariance)
	volume := minVolume + g.rnd.IntN(volumeSpread)
	peFactor := 0.9 + g.rnd.Float64()*0.2
	dividend := g.rnd.Float64() * maxDividend
	g.mu.Unlock()

	base := decimal.NewFromFloat(b.Price)
	price := perturb(base, factor)
	change, pct := delta(price, base)

	return quote.Quote{
		Symbol:        symbol,
		Name:          b.Name,
		Price:         price.InexactFloat64(),
		Change:        change.InexactFloat64(),
		ChangePercent: pct.InexactFloat64(),
		DayLow:        scale(price, 1-dayRange),
		DayHigh:       scale(price, 1+dayRange),
		Week52Low:     scale(base, week52Low),
		Week52High:    scale(base, week52High),
		Volume:        int64(volume),
		MarketCap:     decimal.NewFromFloat(b.MarketCap).Mul(price).Div(base).Round(0).InexactFloat64(),
		PERatio:       scale(decimal.NewFromFloat(b.PE), peFactor),
		DividendYield: decimal.NewFromFloat(dividend).Round(2).InexactFloat64(),
		LastUpdated:   g.now().UTC(),
		Source:        quote.SourceSynthetic,
	}
}

// Index returns a synthetic index value for a normalized symbol.
func (g *Generator) Index(symbol string) quote.IndexValue {
	b := indexBaseFor(symbol)

	g.mu.Lock()
	factor := g.perturbation(IndexVariance)
	g.mu.Unlock()

	base := decimal.NewFromFloat(b.Price)
	price := perturb(base, factor)
	change, pct := delta(price, base)

	return quote.IndexValue{
		Symbol:        symbol,
		Name:          b.Name,
		Price:         price.InexactFloat64(),
		Change:        change.InexactFloat64(),
		ChangePercent: pct.InexactFloat64(),
		LastUpdated:   g.now().UTC(),
		Source:        quote.SourceSynthetic,
	}
}

// StockName returns the display name for symbol, or the symbol itself when
// it is not in the table.
func (g *Generator) StockName(symbol string) string {
	return stockBaseFor(symbol).Name
}

// perturbation returns 1 + (r-0.5)*2*variance. g.mu must be held.
func (g *Generator) perturbation(variance float64) decimal.Decimal {
	r := decimal.NewFromFloat(g.rnd.Float64())
	return one.Add(r.Sub(half).Mul(two).Mul(decimal.NewFromFloat(variance)))
}

// perturb scales base by factor and rounds to cents toward base, so the
// change never exceeds the variance bound.
func perturb(base, factor decimal.Decimal) decimal.Decimal {
	raw := base.Mul(factor)
	if raw.LessThan(base) {
		return raw.RoundCeil(2)
	}
	return raw.RoundFloor(2)
}

func delta(price, base decimal.Decimal) (change, pct decimal.Decimal) {
	change = price.Sub(base)
	pct = change.Div(base).Mul(hundred).Round(2)
	return change, pct
}

func scale(d decimal.Decimal, f float64) float64 {
	return d.Mul(decimal.NewFromFloat(f)).Round(2).InexactFloat64()
}
