// Package upstream fetches real quotes from the paid provider while
// protecting the daily quota. Every failure degrades to synthetic data.
package upstream

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"quoteservice/internal/quote"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 5 * time.Second

// QuoteClient calls the upstream provider.
//
//go:generate mockgen -package=upstream_test -destination=mock_quote_client_test.go -source=fetcher.go QuoteClient
type QuoteClient interface {
	GlobalQuote(ctx context.Context, symbol string) (quote.Quote, error)
}

// Quota gates upstream calls. TryConsume records an attempt only when one
// is allowed.
type Quota interface {
	TryConsume() bool
}

// Fallback produces synthetic quotes.
type Fallback interface {
	Stock(symbol string) quote.Quote
	StockName(symbol string) string
}

// Fetcher retrieves real quotes, falling back to synthetic ones.
type Fetcher struct {
	client   QuoteClient
	quota    Quota
	fallback Fallback
	timeout  time.Duration
	log      logrus.FieldLogger
}

// Config configures a Fetcher.
type Config struct {
	// Client is nil when no API key is configured; every fetch is then synthetic.
	Client   QuoteClient
	Quota    Quota
	Fallback Fallback
	// Timeout bounds each upstream call. Defaults to DefaultTimeout.
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// New returns a Fetcher.
func New(cfg Config) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Fetcher{
		client:   cfg.Client,
		quota:    cfg.Quota,
		fallback: cfg.Fallback,
		timeout:  cfg.Timeout,
		log:      cfg.Logger.WithField("component", "upstream"),
	}
}

// FetchReal returns the upstream quote for a normalized symbol. It never
// fails: a missing key, an exhausted quota or any upstream error yields a
// synthetic quote instead.
func (f *Fetcher) FetchReal(ctx context.Context, symbol string) quote.Quote {
	log := f.log.WithField("symbol", symbol)
	if f.client == nil {
		log.Debug("no api key configured, using synthetic quote")
		return f.fallback.Stock(symbol)
	}
	// The attempt is charged before the call so failures still count.
	if !f.quota.TryConsume() {
		log.Info("upstream quota exhausted, using synthetic quote")
		return f.fallback.Stock(symbol)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	q, err := f.client.GlobalQuote(ctx, symbol)
	if err != nil {
		log.WithError(err).Warn("upstream fetch failed, using synthetic quote")
		return f.fallback.Stock(symbol)
	}
	q.Symbol = symbol
	q.Name = f.fallback.StockName(symbol)
	return q
}
