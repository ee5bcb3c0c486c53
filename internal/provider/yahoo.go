package provider

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bhanu03042005/marketwatcher/internal/model"
)

// DefaultYahooBaseURL is the public Yahoo Finance API host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher and ProfileLookup against the Yahoo
// Finance public API.
type YahooFetcher struct {
	client *resty.Client
}

// NewYahooFetcher creates a fetcher. An empty baseURL selects the public
// Yahoo host; tests point it at a local server.
func NewYahooFetcher(baseURL string) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0")
	return &YahooFetcher{client: client}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo chart API. Price
// arrays carry nulls for holidays, hence the pointer elements.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// FetchHistory retrieves daily bars covering [start, end]. A response that
// succeeds but carries no samples yields (nil, nil): no data is a warning
// for the caller, not a failure.
func (f *YahooFetcher) FetchHistory(symbol string, start, end time.Time) ([]model.OHLCV, error) {
	var chart yahooChart
	resp, err := f.client.R().
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"period1":  strconv.FormatInt(start.Unix(), 10),
			"period2":  strconv.FormatInt(end.AddDate(0, 0, 1).Unix(), 10),
		}).
		SetResult(&chart).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo fetch %s: status %d", symbol, resp.StatusCode())
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error for %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := result.Indicators.Quote[0]
	if len(quote.Open) != len(result.Timestamp) || len(quote.High) != len(result.Timestamp) ||
		len(quote.Low) != len(result.Timestamp) || len(quote.Close) != len(result.Timestamp) ||
		len(quote.Volume) != len(result.Timestamp) {
		return nil, fmt.Errorf("yahoo fetch %s: malformed response", symbol)
	}

	bars := make([]model.OHLCV, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, h := deref(quote.Open[i]), deref(quote.High[i])
		l, c := deref(quote.Low[i]), deref(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // null bar (holiday etc.)
		}
		bars = append(bars, model.OHLCV{
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: deref(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// yahooSummary is the response structure from the quoteSummary API.
type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Sector   string `json:"sector"`
				Industry string `json:"industry"`
				Website  string `json:"website"`
			} `json:"assetProfile"`
			QuoteType struct {
				LongName string `json:"longName"`
			} `json:"quoteType"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// LookupProfile retrieves optional descriptive fields. Absent fields stay
// empty; only transport or API failures return an error.
func (f *YahooFetcher) LookupProfile(symbol string) (*model.CompanyProfile, error) {
	var summary yahooSummary
	resp, err := f.client.R().
		SetPathParam("symbol", symbol).
		SetQueryParam("modules", "assetProfile,quoteType").
		SetResult(&summary).
		Get("/v10/finance/quoteSummary/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("yahoo profile %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo profile %s: status %d", symbol, resp.StatusCode())
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo profile api error for %s: %s", symbol, summary.QuoteSummary.Error.Description)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return &model.CompanyProfile{}, nil
	}

	r := summary.QuoteSummary.Result[0]
	return &model.CompanyProfile{
		Name:     r.QuoteType.LongName,
		Sector:   r.AssetProfile.Sector,
		Industry: r.AssetProfile.Industry,
		Website:  r.AssetProfile.Website,
	}, nil
}
