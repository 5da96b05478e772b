// Command quote prints stock and index quotes from the same service the
// HTTP server runs, without starting a listener.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"quoteservice/internal/app"
	"quoteservice/internal/config"
	"quoteservice/internal/quote"
)

type output struct {
	Quotes  []quote.Quote      `json:"quotes"`
	Indices []quote.IndexValue `json:"indices,omitempty"`
}

func main() {
	var (
		symbols  []string
		indices  []string
		cfgPath  string
		upstream bool
		asJSON   bool
		timeout  time.Duration
	)
	flag.StringSliceVarP(&symbols, "symbols", "s", []string{"AAPL", "MSFT", "GOOGL"}, "stock symbols")
	flag.StringSliceVarP(&indices, "indices", "i", nil, "index symbols, e.g. ^GSPC,^DJI")
	flag.StringVarP(&cfgPath, "config", "c", os.Getenv("CONFIG_FILE"), "path to config.json or config.yaml (optional)")
	flag.BoolVar(&upstream, "upstream", false, "fetch real stock quotes when an API key is configured")
	flag.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	if flag.CommandLine.Changed("upstream") {
		cfg.Upstream.Enabled = upstream
	}
	log := cfg.Log.NewLogger(os.Stderr)

	a, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("wiring")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out := output{Quotes: a.Service.GetMultipleStockQuotes(ctx, symbols)}
	for _, sym := range indices {
		if v := a.Service.GetIndexValue(ctx, sym); v != nil {
			out.Indices = append(out.Indices, *v)
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		err = enc.Encode(out)
	} else {
		err = render(os.Stdout, out)
	}
	if err != nil {
		log.WithError(err).Fatal("write")
	}
}

func render(w io.Writer, out output) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(out.Quotes) > 0 {
		fmt.Fprintln(tw, "SYMBOL\tNAME\tPRICE\tCHANGE\tCHANGE%\tDAY RANGE\tVOLUME\tSOURCE")
		for _, q := range out.Quotes {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s - %s\t%d\t%s\n",
				q.Symbol, q.Name, usd(q.Price), signedUSD(q.Change), percent(q.ChangePercent),
				usd(q.DayLow), usd(q.DayHigh), q.Volume, q.Source)
		}
	}
	if len(out.Indices) > 0 {
		if len(out.Quotes) > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, "INDEX\tNAME\tVALUE\tCHANGE\tCHANGE%")
		for _, v := range out.Indices {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				v.Symbol, v.Name, points(v.Price), points(v.Change), percent(v.ChangePercent))
		}
	}
	return tw.Flush()
}

func cents(v float64) int64 {
	return decimal.NewFromFloat(v).Shift(2).Round(0).IntPart()
}

func usd(v float64) string {
	return money.New(cents(v), "USD").Display()
}

func signedUSD(v float64) string {
	if v > 0 {
		return "+" + usd(v)
	}
	return usd(v)
}

func points(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func percent(v float64) string {
	d := decimal.NewFromFloat(v).StringFixed(2) + "%"
	if v > 0 {
		return "+" + d
	}
	return d
}
