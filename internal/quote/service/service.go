// Package service answers quote requests from a TTL cache, producing fresh
// values on a miss. It never fails for data availability reasons.
package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"quoteservice/internal/quote"
	"quoteservice/internal/quote/cache"
)

// Generator produces synthetic values.
type Generator interface {
	Stock(symbol string) quote.Quote
	Index(symbol string) quote.IndexValue
}

// Fetcher retrieves real stock quotes and never fails.
type Fetcher interface {
	FetchReal(ctx context.Context, symbol string) quote.Quote
}

// Quota reports the upstream calls left today.
type Quota interface {
	Remaining() int
}

// Config wires a Service.
type Config struct {
	Cache     *cache.Cache[any]
	Generator Generator
	// Fetcher is used only when UseUpstream is set.
	Fetcher     Fetcher
	UseUpstream bool
	Quota       Quota
	Logger      logrus.FieldLogger
}

// Service owns the process-wide cache and quota state. Cache warmth and
// quota are per process; separate instances do not share them.
type Service struct {
	cache       *cache.Cache[any]
	generator   Generator
	fetcher     Fetcher
	useUpstream bool
	quota       Quota
	log         logrus.FieldLogger

	// group collapses concurrent misses on the same key.
	group singleflight.Group
}

// New returns a Service. A nil cache gets a default one.
func New(cfg Config) *Service {
	if cfg.Cache == nil {
		cfg.Cache = cache.New[any](cache.DefaultTTL)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Fetcher == nil {
		cfg.UseUpstream = false
	}
	return &Service{
		cache:       cfg.Cache,
		generator:   cfg.Generator,
		fetcher:     cfg.Fetcher,
		useUpstream: cfg.UseUpstream,
		quota:       cfg.Quota,
		log:         cfg.Logger.WithField("component", "service"),
	}
}

// GetStockQuote returns the quote for symbol, from cache while it is valid.
func (s *Service) GetStockQuote(ctx context.Context, symbol string) *quote.Quote {
	sym := quote.NormalizeSymbol(symbol)
	v := s.resolve(quote.StockKey(sym), func() any {
		if s.useUpstream {
			// The result is shared with every caller waiting on this key, so
			// one caller going away must not cut it short. The fetcher's own
			// timeout still bounds the call.
			return s.fetcher.FetchReal(context.WithoutCancel(ctx), sym)
		}
		return s.generator.Stock(sym)
	})
	q, ok := v.(quote.Quote)
	if !ok {
		return nil
	}
	return &q
}

// GetMultipleStockQuotes resolves symbols one after another in input order.
// Duplicates are resolved independently, so later ones hit the cache.
func (s *Service) GetMultipleStockQuotes(ctx context.Context, symbols []string) []quote.Quote {
	out := make([]quote.Quote, 0, len(symbols))
	for _, sym := range symbols {
		if q := s.GetStockQuote(ctx, sym); q != nil {
			out = append(out, *q)
		}
	}
	return out
}

// GetIndexValue returns the value of index symbol, from cache while it is valid.
func (s *Service) GetIndexValue(_ context.Context, symbol string) *quote.IndexValue {
	sym := quote.NormalizeSymbol(symbol)
	v := s.resolve(quote.IndexKey(sym), func() any {
		return s.generator.Index(sym)
	})
	iv, ok := v.(quote.IndexValue)
	if !ok {
		return nil
	}
	return &iv
}

// Stats reports quota and cache state.
func (s *Service) Stats() quote.Stats {
	st := quote.Stats{CacheEntries: s.cache.Len()}
	if s.quota != nil {
		st.RequestsRemaining = s.quota.Remaining()
	}
	return st
}

// resolve returns the valid cached value for key or produces, stores and
// returns a new one.
func (s *Service) resolve(key string, produce func() any) any {
	if v, ok := s.lookup(key); ok {
		return v
	}
	v, _, _ := s.group.Do(key, func() (any, error) {
		if v, ok := s.lookup(key); ok {
			return v, nil
		}
		start := time.Now()
		v := produce()
		s.cache.Set(key, v)
		s.log.WithFields(logrus.Fields{"key": key, "took": time.Since(start)}).Debug("cache refreshed")
		return v, nil
	})
	return v
}

func (s *Service) lookup(key string) (any, bool) {
	e, ok := s.cache.Get(key)
	if !ok || !s.cache.IsValid(e) {
		return nil, false
	}
	return e.Value, true
}
