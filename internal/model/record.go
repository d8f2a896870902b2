package model

// Info holds the descriptive fields returned by the data provider.
// Any field may be missing; a nil pointer means "unknown" and must never be
// coerced to zero.
type Info struct {
	CompanyName      string
	Sector           string
	MarketCap        *float64
	FiftyTwoWeekHigh *float64
	FiftyTwoWeekLow  *float64
	TrailingPE       *float64
	ForwardPE        *float64
	PEGRatio         *float64
	TotalDebt        *float64
	TotalEquity      *float64
	FreeCashFlow     *float64
	DividendYield    *float64 // fraction, e.g. 0.021
	BookValue        *float64
	PriceToBook      *float64
	ReturnOnEquity   *float64 // fraction
}

// Indicators holds the technical indicator set for one symbol.
// All-or-nothing: either every field is set or every field is nil.
type Indicators struct {
	RSI           *float64
	MACD          *float64
	MACDSignal    *float64
	MACDHistogram *float64
	OBV           *int64
}

// Ratios holds the derived fundamental ratios for one symbol.
type Ratios struct {
	PE             *float64
	ForwardPE      *float64
	PEG            *float64
	DebtToEquity   *float64
	FreeCashFlow   *float64 // passthrough, unrounded
	DividendYield  *float64 // percentage
	BookValue      *float64
	PriceToBook    *float64
	ReturnOnEquity *float64 // percentage
}

// Record is the unit of scan output: one flagged symbol with its metrics.
// Built once per qualifying symbol and immutable afterwards.
type Record struct {
	Symbol           string
	CompanyName      string
	Sector           string
	CurrentPrice     float64
	PreviousClose    float64
	PercentChange    float64
	MarketCap        float64
	FiftyTwoWeekHigh float64
	FiftyTwoWeekLow  float64
	DistanceFromHigh float64
	Volume           float64
	AvgVolume        float64
	Indicators       Indicators
	Ratios           Ratios
}

// NewsItem is a single headline attached to a symbol's deep-dive section.
type NewsItem struct {
	Title     string
	Link      string
	Publisher string
	Published string
}

// Float returns a pointer to v. Convenient for building sparse Info values.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int64) *int64 { return &v }
