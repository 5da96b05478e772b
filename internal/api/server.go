package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"quoteservice/internal/quote"
)

// QuoteService is the core the handlers call into.
//
//go:generate mockgen -package=api_test -destination=mock_quote_service_test.go -source=server.go QuoteService
type QuoteService interface {
	GetStockQuote(ctx context.Context, symbol string) *quote.Quote
	GetMultipleStockQuotes(ctx context.Context, symbols []string) []quote.Quote
	GetIndexValue(ctx context.Context, symbol string) *quote.IndexValue
	Stats() quote.Stats
}

// Options configures the HTTP surface.
type Options struct {
	// LegacyPrefix mounts every route a second time under this prefix.
	// Empty or "/" disables the second mount.
	LegacyPrefix    string
	MaxBatchSymbols int
	RequestTimeout  time.Duration
	CORSAllowOrigin string
	Logger          logrus.FieldLogger
}

// Server maps HTTP requests onto a QuoteService.
type Server struct {
	svc     QuoteService
	opts    Options
	log     logrus.FieldLogger
	handler http.Handler
}

type quoteResponse struct {
	Quote *quote.Quote `json:"quote"`
}

type quotesResponse struct {
	Quotes []quote.Quote `json:"quotes"`
}

type indexResponse struct {
	Index *quote.IndexValue `json:"index"`
}

type healthResponse struct {
	Status               string `json:"status"`
	Timestamp            string `json:"timestamp"`
	APIRequestsRemaining int    `json:"api_requests_remaining"`
	CacheEntries         int    `json:"cache_entries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New returns a Server with all routes mounted.
func New(svc QuoteService, opts Options) *Server {
	if opts.MaxBatchSymbols <= 0 {
		opts.MaxBatchSymbols = 100
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	s := &Server{svc: svc, opts: opts, log: opts.Logger.WithField("component", "api")}

	mux := http.NewServeMux()
	s.mount(mux, "")
	if p := normalizePrefix(opts.LegacyPrefix); p != "" {
		s.mount(mux, p)
	}

	s.handler = withRequestID(s.log, withJSONHeaders(opts.CORSAllowOrigin, withGzip(s.recoverPanic(limitBody(jsonMuxErrors(mux))))))
	return s
}

// Handler returns the root handler including middleware.
func (s *Server) Handler() http.Handler { return s.handler }

func (s *Server) mount(mux *http.ServeMux, prefix string) {
	mux.HandleFunc("GET "+prefix+"/market/stock/{symbol}", s.handleStock)
	mux.HandleFunc("GET "+prefix+"/market/stock/{$}", s.handleStock)
	mux.HandleFunc("POST "+prefix+"/market/stocks", s.handleStocks)
	mux.HandleFunc("GET "+prefix+"/market/index/{symbol}", s.handleIndex)
	mux.HandleFunc("GET "+prefix+"/market/index/{$}", s.handleIndex)
	mux.HandleFunc("GET "+prefix+"/health", s.handleHealth)
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(r.PathValue("symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opts.RequestTimeout)
	defer cancel()

	q := s.svc.GetStockQuote(ctx, symbol)
	if q == nil {
		writeError(w, http.StatusNotFound, "quote not found")
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{Quote: q})
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	symbols, msg := s.decodeSymbols(r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opts.RequestTimeout)
	defer cancel()

	quotes := s.svc.GetMultipleStockQuotes(ctx, symbols)
	if quotes == nil {
		quotes = []quote.Quote{}
	}
	writeJSON(w, http.StatusOK, quotesResponse{Quotes: quotes})
}

// decodeSymbols reads {"symbols": [...]} and returns a validation message
// when the body is unusable.
func (s *Server) decodeSymbols(r *http.Request) ([]string, string) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil, "invalid JSON body"
	}
	raw, ok := body["symbols"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, "symbols must be an array"
	}
	var symbols []string
	if err := json.Unmarshal(raw, &symbols); err != nil {
		return nil, "symbols must be an array of strings"
	}
	if len(symbols) > s.opts.MaxBatchSymbols {
		return nil, "too many symbols"
	}
	for _, sym := range symbols {
		if strings.TrimSpace(sym) == "" {
			return nil, "symbols must not be blank"
		}
	}
	return symbols, ""
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(r.PathValue("symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), s.opts.RequestTimeout)
	defer cancel()

	v := s.svc.GetIndexValue(ctx, symbol)
	if v == nil {
		writeError(w, http.StatusNotFound, "index not found")
		return
	}
	writeJSON(w, http.StatusOK, indexResponse{Index: v})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.svc.Stats()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:               "ok",
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		APIRequestsRemaining: st.RequestsRemaining,
		CacheEntries:         st.CacheEntries,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
