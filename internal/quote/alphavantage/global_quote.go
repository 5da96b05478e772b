package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"

	"github.com/Jeffail/gabs/v2"
	"github.com/shopspring/decimal"

	"quoteservice/internal/quote"
)

// Errors returned by GlobalQuote. Wrapped errors carry details.
var (
	ErrRateLimited      = errors.New("alphavantage: rate limited")
	ErrUpstream         = errors.New("alphavantage: upstream error")
	ErrNoData           = errors.New("alphavantage: no quote data")
	ErrMalformed        = errors.New("alphavantage: malformed quote")
	ErrUnexpectedStatus = errors.New("alphavantage: unexpected status")
)

const maxResponseBytes = 1 << 20

// Fields of the "Global Quote" object.
const (
	fieldHigh          = "03. high"
	fieldLow           = "04. low"
	fieldPrice         = "05. price"
	fieldVolume        = "06. volume"
	fieldChange        = "09. change"
	fieldChangePercent = "10. change percent"
)

var (
	week52LowFactor  = decimal.NewFromFloat(0.7)
	week52HighFactor = decimal.NewFromFloat(1.3)
)

// GlobalQuote retrieves the latest quote for symbol. Market cap, PE ratio and
// dividend yield are not part of this endpoint and are left zero; the
// 52-week range is approximated from the current price.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (quote.Quote, error) {
	query := maps.Clone(c.query)
	query.Set("function", "GLOBAL_QUOTE")
	query.Set("symbol", symbol)

	url := fmt.Sprintf("%s/query?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()

	res, err := c.httpClient.Do(req)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusTooManyRequests:
		return quote.Quote{}, fmt.Errorf("%w: status %d", ErrRateLimited, res.StatusCode)

	default:
		return quote.Quote{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)
	}

	b, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return quote.Quote{}, fmt.Errorf("reading response: %w", err)
	}
	body, err := gabs.ParseJSON(b)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("%w: decoding response: %v", ErrMalformed, err)
	}

	// {"Error Message": "Invalid API call. ..."}
	if msg, ok := stringAt(body, "Error Message"); ok {
		return quote.Quote{}, fmt.Errorf("%w: %s", ErrUpstream, msg)
	}
	// {"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is ..."}
	// {"Information": "... standard API rate limit is 25 requests per day ..."}
	for _, key := range []string{"Note", "Information"} {
		if msg, ok := stringAt(body, key); ok {
			return quote.Quote{}, fmt.Errorf("%w: %s", ErrRateLimited, msg)
		}
	}

	// {
	//   "Global Quote": {
	//     "01. symbol": "IBM",
	//     "02. open": "168.0800",
	//     "03. high": "169.9800",
	//     "04. low": "167.5000",
	//     "05. price": "169.2200",
	//     "06. volume": "3174523",
	//     "07. latest trading day": "2024-06-07",
	//     "08. previous close": "168.2000",
	//     "09. change": "1.0200",
	//     "10. change percent": "0.6064%"
	//   }
	// }
	gq := body.Search("Global Quote")
	if gq == nil {
		return quote.Quote{}, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}
	if fields, ok := gq.Data().(map[string]any); !ok || len(fields) == 0 {
		return quote.Quote{}, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	price, err := number(gq, fieldPrice)
	if err != nil {
		return quote.Quote{}, err
	}
	change, err := number(gq, fieldChange)
	if err != nil {
		return quote.Quote{}, err
	}
	pct, err := number(gq, fieldChangePercent)
	if err != nil {
		return quote.Quote{}, err
	}
	high, err := number(gq, fieldHigh)
	if err != nil {
		return quote.Quote{}, err
	}
	low, err := number(gq, fieldLow)
	if err != nil {
		return quote.Quote{}, err
	}
	volume, err := number(gq, fieldVolume)
	if err != nil {
		return quote.Quote{}, err
	}

	return quote.Quote{
		Symbol:        symbol,
		Name:          symbol,
		Price:         price.Round(2).InexactFloat64(),
		Change:        change.Round(2).InexactFloat64(),
		ChangePercent: pct.Round(2).InexactFloat64(),
		DayLow:        low.Round(2).InexactFloat64(),
		DayHigh:       high.Round(2).InexactFloat64(),
		Week52Low:     price.Mul(week52LowFactor).Round(2).InexactFloat64(),
		Week52High:    price.Mul(week52HighFactor).Round(2).InexactFloat64(),
		Volume:        volume.IntPart(),
		LastUpdated:   c.now().UTC(),
		Source:        quote.SourceAlphaVantage,
	}, nil
}

// number parses a string field of the Global Quote object.
func number(gq *gabs.Container, key string) (decimal.Decimal, error) {
	raw, ok := stringAt(gq, key)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: missing %q", ErrMalformed, key)
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q=%q: %v", ErrMalformed, key, raw, err)
	}
	return d, nil
}

// stringAt returns the string stored directly under key in c.
func stringAt(c *gabs.Container, key string) (string, bool) {
	child := c.Search(key)
	if child == nil {
		return "", false
	}
	s, ok := child.Data().(string)
	return s, ok
}
