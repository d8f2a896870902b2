package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/jamiedarville/sp500-analysis/internal/model"
)

// Yahoo implements Provider using the Yahoo Finance public API.
type Yahoo struct {
	Client *http.Client
}

// NewYahoo creates a new Yahoo Finance provider with an explicit per-call
// timeout and optional proxy support.
func NewYahoo(proxyURL string, timeout time.Duration) *Yahoo {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Yahoo{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (y *Yahoo) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (y *Yahoo) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	// Yahoo throttling surfaces as 429, but intermittently as 401 too.
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusUnauthorized {
		return nil, &RateLimitError{StatusCode: resp.StatusCode, Message: string(body)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// chartRange maps a day count onto the coarser ranges the chart API accepts.
func chartRange(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}

// DailyBars returns up to `days` daily bars, oldest first.
func (y *Yahoo) DailyBars(ctx context.Context, symbol string, days int) ([]model.Bar, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=%s",
		url.PathEscape(symbol), chartRange(days))

	body, err := y.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil // no data: the caller treats a short window as a skip
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.Bar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// yahooValue is the raw/fmt pair Yahoo wraps numeric fields in.
type yahooValue struct {
	Raw *float64 `json:"raw"`
}

type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName  string     `json:"longName"`
				ShortName string     `json:"shortName"`
				MarketCap yahooValue `json:"marketCap"`
			} `json:"price"`
			AssetProfile struct {
				Sector string `json:"sector"`
			} `json:"assetProfile"`
			SummaryDetail struct {
				FiftyTwoWeekHigh yahooValue `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow  yahooValue `json:"fiftyTwoWeekLow"`
				TrailingPE       yahooValue `json:"trailingPE"`
				ForwardPE        yahooValue `json:"forwardPE"`
				DividendYield    yahooValue `json:"dividendYield"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics struct {
				PegRatio    yahooValue `json:"pegRatio"`
				BookValue   yahooValue `json:"bookValue"`
				PriceToBook yahooValue `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				TotalDebt      yahooValue `json:"totalDebt"`
				FreeCashflow   yahooValue `json:"freeCashflow"`
				ReturnOnEquity yahooValue `json:"returnOnEquity"`
			} `json:"financialData"`
			BalanceSheetHistory struct {
				BalanceSheetStatements []struct {
					TotalStockholderEquity yahooValue `json:"totalStockholderEquity"`
				} `json:"balanceSheetStatements"`
			} `json:"balanceSheetHistory"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// Quote returns the descriptive info for a symbol. Missing fields stay nil.
func (y *Yahoo) Quote(ctx context.Context, symbol string) (*model.Info, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v10/finance/quoteSummary/%s"+
		"?modules=price,assetProfile,summaryDetail,defaultKeyStatistics,financialData,balanceSheetHistory",
		url.PathEscape(symbol))

	body, err := y.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var summary yahooSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, fmt.Errorf("yahoo decode summary: %w", err)
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return &model.Info{}, nil
	}

	r := summary.QuoteSummary.Result[0]
	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}
	info := &model.Info{
		CompanyName:      name,
		Sector:           r.AssetProfile.Sector,
		MarketCap:        r.Price.MarketCap.Raw,
		FiftyTwoWeekHigh: r.SummaryDetail.FiftyTwoWeekHigh.Raw,
		FiftyTwoWeekLow:  r.SummaryDetail.FiftyTwoWeekLow.Raw,
		TrailingPE:       r.SummaryDetail.TrailingPE.Raw,
		ForwardPE:        r.SummaryDetail.ForwardPE.Raw,
		PEGRatio:         r.DefaultKeyStatistics.PegRatio.Raw,
		TotalDebt:        r.FinancialData.TotalDebt.Raw,
		FreeCashFlow:     r.FinancialData.FreeCashflow.Raw,
		DividendYield:    r.SummaryDetail.DividendYield.Raw,
		BookValue:        r.DefaultKeyStatistics.BookValue.Raw,
		PriceToBook:      r.DefaultKeyStatistics.PriceToBook.Raw,
		ReturnOnEquity:   r.FinancialData.ReturnOnEquity.Raw,
	}
	if stmts := r.BalanceSheetHistory.BalanceSheetStatements; len(stmts) > 0 {
		info.TotalEquity = stmts[0].TotalStockholderEquity.Raw
	}
	return info, nil
}

type yahooNews struct {
	News []struct {
		Title               string `json:"title"`
		Link                string `json:"link"`
		Publisher           string `json:"publisher"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// News returns up to max recent headlines for a symbol.
func (y *Yahoo) News(ctx context.Context, symbol string, max int) ([]model.NewsItem, error) {
	u := fmt.Sprintf("https://query1.finance.yahoo.com/v1/finance/search?q=%s&quotesCount=0&newsCount=%d",
		url.QueryEscape(symbol), max)

	body, err := y.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var res yahooNews
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("yahoo decode news: %w", err)
	}

	items := make([]model.NewsItem, 0, max)
	for _, n := range res.News {
		if len(items) == max {
			break
		}
		published := "Unknown"
		if n.ProviderPublishTime > 0 {
			published = time.Unix(n.ProviderPublishTime, 0).Format("2006-01-02 15:04")
		}
		items = append(items, model.NewsItem{
			Title:     n.Title,
			Link:      n.Link,
			Publisher: n.Publisher,
			Published: published,
		})
	}
	return items, nil
}
