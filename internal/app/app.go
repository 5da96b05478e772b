// Package app wires configuration into a ready quote service.
package app

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"quoteservice/internal/config"
	"quoteservice/internal/httpx"
	"quoteservice/internal/quote/alphavantage"
	"quoteservice/internal/quote/cache"
	"quoteservice/internal/quote/quota"
	"quoteservice/internal/quote/service"
	"quoteservice/internal/quote/synthetic"
	"quoteservice/internal/quote/upstream"
)

// App holds the long-lived components of one process.
type App struct {
	Service   *service.Service
	Quota     *quota.Tracker
	Generator *synthetic.Generator
	// Upstream is nil unless real quotes are enabled.
	Upstream *alphavantage.Client
}

// Option adjusts wiring, mostly for tests.
type Option func(*options)

type options struct {
	rnd        synthetic.Rand
	now        func() time.Time
	httpClient alphavantage.HTTPClient
}

// WithRand fixes the synthetic random source.
func WithRand(rnd synthetic.Rand) Option {
	return func(o *options) { o.rnd = rnd }
}

// WithClock replaces time.Now across all components.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithHTTPClient replaces the transport used for upstream calls.
func WithHTTPClient(c alphavantage.HTTPClient) Option {
	return func(o *options) { o.httpClient = c }
}

// New builds the service graph described by cfg.
func New(cfg config.Config, log logrus.FieldLogger, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	loc, err := time.LoadLocation(cfg.Upstream.Timezone)
	if err != nil {
		return nil, fmt.Errorf("upstream timezone %q: %w", cfg.Upstream.Timezone, err)
	}

	a := &App{
		Generator: synthetic.New(o.rnd, synthetic.WithClock(o.now)),
		Quota: quota.New(cfg.Upstream.DailyLimit,
			quota.WithClock(o.now),
			quota.WithLocation(loc),
			quota.WithPerMinute(cfg.Upstream.MaxRequestsPerMinute),
		),
	}

	timeout := time.Duration(cfg.Upstream.TimeoutSec) * time.Second
	var fetcher service.Fetcher
	if cfg.UpstreamActive() {
		hc := o.httpClient
		if hc == nil {
			hc = httpx.New(timeout)
		}
		client, err := alphavantage.NewClient(cfg.Upstream.APIKey,
			alphavantage.WithBaseURL(cfg.Upstream.BaseURL),
			alphavantage.WithHTTPClient(hc),
			alphavantage.WithHeader(http.Header{"Accept": []string{"application/json"}}),
			alphavantage.WithClock(o.now),
		)
		if err != nil {
			return nil, fmt.Errorf("alphavantage client: %w", err)
		}
		a.Upstream = client
		fetcher = upstream.New(upstream.Config{
			Client:   client,
			Quota:    a.Quota,
			Fallback: a.Generator,
			Timeout:  timeout,
			Logger:   log,
		})
		log.WithFields(logrus.Fields{
			"daily_limit": a.Quota.Limit(),
			"per_minute":  cfg.Upstream.MaxRequestsPerMinute,
			"timezone":    loc.String(),
		}).Info("real quotes enabled")
	} else if cfg.Upstream.Enabled {
		log.Warn("upstream.enabled=true but ALPHA_VANTAGE_API_KEY not set; serving synthetic quotes")
	}

	a.Service = service.New(service.Config{
		Cache: cache.New[any](time.Duration(cfg.Cache.TTLSeconds)*time.Second,
			cache.WithClock[any](o.now),
			cache.WithMaxItems[any](cfg.Cache.MaxItems),
		),
		Generator:   a.Generator,
		Fetcher:     fetcher,
		UseUpstream: fetcher != nil,
		Quota:       a.Quota,
		Logger:      log,
	})
	return a, nil
}
