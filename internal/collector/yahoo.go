package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"SIPPlanner/internal/model"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// YahooSource builds the closing price table from the Yahoo Finance chart API,
// one request per symbol.
type YahooSource struct {
	Client  *http.Client
	BaseURL string
	Symbols []string
	Range   string // chart range, e.g. "1y"
	log     *zap.SugaredLogger
}

// NewYahooSource creates a Yahoo Finance source for symbols.
func NewYahooSource(symbols []string, rng, proxyURL string, log *zap.SugaredLogger) *YahooSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooSource{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: yahooChartURL,
		Symbols: symbols,
		Range:   rng,
		log:     log,
	}
}

func (s *YahooSource) Name() string { return "yahoo" }

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type dailyClose struct {
	day   time.Time
	close float64
}

func (s *YahooSource) fetchCloses(ctx context.Context, symbol string) ([]dailyClose, error) {
	u := fmt.Sprintf("%s%s?interval=1d&range=%s", s.BaseURL, url.PathEscape(symbol), url.QueryEscape(s.Range))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "yahoo fetch")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "yahoo read body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, errors.Wrap(err, "yahoo decode")
	}
	if chart.Chart.Error != nil {
		return nil, errors.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, errors.New("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	out := make([]dailyClose, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := math.NaN()
		if i < len(quote.Close) && quote.Close[i] != nil {
			c = *quote.Close[i]
		}
		day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		out = append(out, dailyClose{day: day, close: c})
	}
	return out, nil
}

// FetchCloses fetches every symbol and aligns the series on trading day.
// Days a symbol did not trade are left missing.
func (s *YahooSource) FetchCloses(ctx context.Context) (*model.PriceTable, error) {
	series := make([][]dailyClose, len(s.Symbols))
	days := map[time.Time]struct{}{}
	for i, sym := range s.Symbols {
		closes, err := s.fetchCloses(ctx, sym)
		if err != nil {
			return nil, &model.SourceError{Msg: fmt.Sprintf("fetch prices for %s: %v", sym, err), Err: err}
		}
		s.log.Debugf("yahoo: %s returned %d closes", sym, len(closes))
		series[i] = closes
		for _, c := range closes {
			days[c.day] = struct{}{}
		}
	}

	table := &model.PriceTable{Companies: append([]string(nil), s.Symbols...)}
	for d := range days {
		table.Dates = append(table.Dates, d)
	}
	sort.Slice(table.Dates, func(i, j int) bool { return table.Dates[i].Before(table.Dates[j]) })

	index := make(map[time.Time]int, len(table.Dates))
	table.Closes = make([][]float64, len(table.Dates))
	for i, d := range table.Dates {
		index[d] = i
		row := make([]float64, len(s.Symbols))
		for j := range row {
			row[j] = math.NaN()
		}
		table.Closes[i] = row
	}
	for j, closes := range series {
		for _, c := range closes {
			table.Closes[index[c.day]][j] = c.close
		}
	}
	return table, nil
}
