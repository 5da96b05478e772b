package alphavantage

import (
	"errors"
	"net/http"
	"net/url"
	"time"
)

// baseURL is the production Alpha Vantage endpoint.
const baseURL = "https://www.alphavantage.co"

// ErrMissingAPIKey is returned by NewClient when no key is given.
var ErrMissingAPIKey = errors.New("alphavantage: api key is required")

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a minimal client for the Alpha Vantage query API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient performs requests.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query carries the api key and is sent with each request.
	query url.Values
	// now stamps LastUpdated on returned quotes.
	now func() time.Time
}

// ClientOption is a configuration option for the Alpha Vantage client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a new Alpha Vantage client authenticated with key.
func NewClient(key string, options ...ClientOption) (*Client, error) {
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	var client = &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
		now:        time.Now,
	}
	// Alpha Vantage authenticates with a query parameter.
	// https://www.alphavantage.co/documentation/
	client.query.Set("apikey", key)
	for _, option := range options {
		option(client)
	}
	return client, nil
}
