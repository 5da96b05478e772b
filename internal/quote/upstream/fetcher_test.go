package upstream_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"quoteservice/internal/quote"
	"quoteservice/internal/quote/alphavantage"
	"quoteservice/internal/quote/quota"
	"quoteservice/internal/quote/synthetic"
	"quoteservice/internal/quote/upstream"
)

type midRand struct{}

func (midRand) Float64() float64 { return 0.5 }
func (midRand) IntN(int) int     { return 0 }

var now = time.Date(2025, 4, 1, 14, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type fixture struct {
	client  *MockQuoteClient
	tracker *quota.Tracker
	hook    *logtest.Hook
	fetcher *upstream.Fetcher
}

func newFixture(t *testing.T, limit int, withClient bool) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := NewMockQuoteClient(ctrl)
	tracker := quota.New(limit, quota.WithClock(clock))
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	cfg := upstream.Config{
		Quota:    tracker,
		Fallback: synthetic.New(midRand{}, synthetic.WithClock(clock)),
		Timeout:  time.Second,
		Logger:   logger,
	}
	if withClient {
		cfg.Client = client
	}
	return fixture{client: client, tracker: tracker, hook: hook, fetcher: upstream.New(cfg)}
}

func TestFetchReal_Success(t *testing.T) {
	t.Parallel()

	// Arrange
	f := newFixture(t, 20, true)
	f.client.EXPECT().
		GlobalQuote(gomock.Any(), "AAPL").
		DoAndReturn(func(ctx context.Context, symbol string) (quote.Quote, error) {
			_, hasDeadline := ctx.Deadline()
			require.True(t, hasDeadline, "upstream call must be bounded")
			return quote.Quote{Symbol: symbol, Name: symbol, Price: 190.12, Source: quote.SourceAlphaVantage}, nil
		}).
		Times(1)

	// Act
	q := f.fetcher.FetchReal(t.Context(), "AAPL")

	// Assert: real data, display name from the table, one call charged.
	require.Equal(t, 190.12, q.Price)
	require.Equal(t, "Apple Inc.", q.Name)
	require.Equal(t, quote.SourceAlphaVantage, q.Source)
	require.Equal(t, 1, f.tracker.Used())
}

func TestFetchReal_NoClientIsSyntheticWithoutQuota(t *testing.T) {
	t.Parallel()

	f := newFixture(t, 20, false)
	f.client.EXPECT().GlobalQuote(gomock.Any(), gomock.Any()).Times(0)

	q := f.fetcher.FetchReal(t.Context(), "AAPL")

	require.Equal(t, quote.SourceSynthetic, q.Source)
	require.Equal(t, 189.84, q.Price)
	require.Equal(t, 0, f.tracker.Used())
}

func TestFetchReal_QuotaExhausted(t *testing.T) {
	t.Parallel()

	// Arrange: spend the only call of the day.
	f := newFixture(t, 1, true)
	require.True(t, f.tracker.TryConsume())
	f.client.EXPECT().GlobalQuote(gomock.Any(), gomock.Any()).Times(0)

	// Act
	q := f.fetcher.FetchReal(t.Context(), "MSFT")

	// Assert
	require.Equal(t, quote.SourceSynthetic, q.Source)
	require.Equal(t, "Microsoft Corporation", q.Name)
	require.Equal(t, 1, f.tracker.Used())
}

func TestFetchReal_ErrorsFallBackAndStillCount(t *testing.T) {
	t.Parallel()

	for _, err := range []error{
		alphavantage.ErrRateLimited,
		alphavantage.ErrNoData,
		alphavantage.ErrMalformed,
		context.DeadlineExceeded,
		errors.New("dial tcp: connection refused"),
	} {
		t.Run(err.Error(), func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, 20, true)
			f.client.EXPECT().GlobalQuote(gomock.Any(), "ZZZZ").Return(quote.Quote{}, err).Times(1)

			q := f.fetcher.FetchReal(t.Context(), "ZZZZ")

			require.Equal(t, quote.SourceSynthetic, q.Source)
			require.Equal(t, 100.0, q.Price)
			require.Equal(t, 1, f.tracker.Used(), "failed calls count against the quota")

			entry := f.hook.LastEntry()
			require.NotNil(t, entry)
			require.Equal(t, logrus.WarnLevel, entry.Level)
			require.Equal(t, "ZZZZ", entry.Data["symbol"])
		})
	}
}
