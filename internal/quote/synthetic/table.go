package synthetic

type stockBase struct {
	Name      string
	Price     float64
	MarketCap float64
	PE        float64
}

type indexBase struct {
	Name  string
	Price float64
}

var stockBases = map[string]stockBase{
	"AAPL":  {Name: "Apple Inc.", Price: 189.84, MarketCap: 2.95e12, PE: 29.5},
	"MSFT":  {Name: "Microsoft Corporation", Price: 415.50, MarketCap: 3.09e12, PE: 36.2},
	"GOOGL": {Name: "Alphabet Inc.", Price: 172.63, MarketCap: 2.13e12, PE: 26.1},
	"AMZN":  {Name: "Amazon.com, Inc.", Price: 183.32, MarketCap: 1.91e12, PE: 51.3},
	"NVDA":  {Name: "NVIDIA Corporation", Price: 121.79, MarketCap: 3.00e12, PE: 71.4},
	"META":  {Name: "Meta Platforms, Inc.", Price: 493.50, MarketCap: 1.25e12, PE: 28.4},
	"TSLA":  {Name: "Tesla, Inc.", Price: 177.48, MarketCap: 5.66e11, PE: 45.2},
	"BRK.B": {Name: "Berkshire Hathaway Inc.", Price: 408.11, MarketCap: 8.80e11, PE: 10.9},
	"JPM":   {Name: "JPMorgan Chase & Co.", Price: 198.88, MarketCap: 5.71e11, PE: 12.1},
	"V":     {Name: "Visa Inc.", Price: 274.20, MarketCap: 5.53e11, PE: 30.6},
	"JNJ":   {Name: "Johnson & Johnson", Price: 146.97, MarketCap: 3.54e11, PE: 21.4},
	"WMT":   {Name: "Walmart Inc.", Price: 66.57, MarketCap: 5.36e11, PE: 28.9},
	"XOM":   {Name: "Exxon Mobil Corporation", Price: 113.62, MarketCap: 4.48e11, PE: 13.9},
	"NFLX":  {Name: "Netflix, Inc.", Price: 641.33, MarketCap: 2.76e11, PE: 44.8},
	"DIS":   {Name: "The Walt Disney Company", Price: 101.57, MarketCap: 1.85e11, PE: 110.2},
	"AMD":   {Name: "Advanced Micro Devices, Inc.", Price: 159.21, MarketCap: 2.57e11, PE: 234.1},
	"INTC":  {Name: "Intel Corporation", Price: 30.87, MarketCap: 1.31e11, PE: 32.5},
	"BAC":   {Name: "Bank of America Corporation", Price: 39.52, MarketCap: 3.09e11, PE: 13.6},
	"KO":    {Name: "The Coca-Cola Company", Price: 62.78, MarketCap: 2.70e11, PE: 25.1},
	"PFE":   {Name: "Pfizer Inc.", Price: 28.31, MarketCap: 1.60e11, PE: 78.6},
}

var indexBases = map[string]indexBase{
	"^GSPC": {Name: "S&P 500", Price: 5431.60},
	"^DJI":  {Name: "Dow Jones Industrial Average", Price: 38589.16},
	"^IXIC": {Name: "NASDAQ Composite", Price: 17688.88},
	"^RUT":  {Name: "Russell 2000", Price: 2006.16},
	"^VIX":  {Name: "CBOE Volatility Index", Price: 12.66},
	"^FTSE": {Name: "FTSE 100", Price: 8146.86},
	"^N225": {Name: "Nikkei 225", Price: 38814.56},
}

// stockBaseFor returns the table row for symbol or the default row.
func stockBaseFor(symbol string) stockBase {
	if b, ok := stockBases[symbol]; ok {
		return b
	}
	return stockBase{Name: symbol, Price: 100, MarketCap: 50e9, PE: 20}
}

// indexBaseFor returns the table row for symbol or the default row.
func indexBaseFor(symbol string) indexBase {
	if b, ok := indexBases[symbol]; ok {
		return b
	}
	return indexBase{Name: symbol, Price: 5000}
}
