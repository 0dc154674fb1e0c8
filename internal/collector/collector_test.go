package collector

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"SIPPlanner/internal/model"
)

const sampleCSV = `Date,INFY,TCS,DEAD
2024-01-01,100,,x
2024-01-02,,210,
2024-01-03,110,220,n/a
`

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"INFY", "TCS", "DEAD"}, table.Companies)
	require.Len(t, table.Dates, 3)
	assert.Equal(t, "2024-01-02", table.Dates[1].Format("2006-01-02"))
	assert.Equal(t, 100.0, table.Closes[0][0])
	assert.True(t, math.IsNaN(table.Closes[0][1]))
	assert.True(t, math.IsNaN(table.Closes[0][2]), "non-numeric is missing")
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("Day,INFY\n2024-01-01,1\n"))
	var de *model.DataError
	assert.True(t, errors.As(err, &de))

	_, err = ReadCSV(strings.NewReader("Date,INFY\nyesterday,1\n"))
	assert.Error(t, err)
}

func TestCSVSource_MissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"))
	_, err := src.FetchCloses(context.Background())

	var se *model.SourceError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Error(), "nope.csv was not found")
}

func TestCollect_CleansTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	c := NewCollector(NewCSVSource(path), zap.NewNop().Sugar())
	table, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"INFY", "TCS"}, table.Companies)
	assert.Equal(t, []float64{100, 100, 110}, table.Column(0))
	assert.Equal(t, []float64{210, 210, 220}, table.Column(1))
}

func TestCollect_TooFewRows(t *testing.T) {
	src := &MockSource{Table: &model.PriceTable{
		Dates:     nil,
		Companies: []string{"A"},
	}}
	_, err := NewCollector(src, zap.NewNop().Sugar()).Collect(context.Background())

	var de *model.DataError
	require.True(t, errors.As(err, &de))
	assert.Contains(t, de.Msg, "Need at least two rows")
}

func TestCollect_SourceError(t *testing.T) {
	src := &MockSource{Err: errors.New("boom")}
	_, err := NewCollector(src, zap.NewNop().Sugar()).Collect(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestMockSource_Default(t *testing.T) {
	table, err := (&MockSource{}).FetchCloses(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Dates, 60)
	assert.Len(t, table.Companies, 4)
}

func TestYahooSource_AlignsSymbols(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "1y", r.URL.Query().Get("range"))
		switch r.URL.Path {
		case "/AAA.NS":
			_, _ = w.Write([]byte(`{"chart":{"result":[{"timestamp":[1704153600,1704240000],
				"indicators":{"quote":[{"close":[10.5,null]}]}}]}}`))
		case "/BBB.NS":
			_, _ = w.Write([]byte(`{"chart":{"result":[{"timestamp":[1704240000,1704326400],
				"indicators":{"quote":[{"close":[20,21]}]}}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewYahooSource([]string{"AAA.NS", "BBB.NS"}, "1y", "", zap.NewNop().Sugar())
	src.BaseURL = srv.URL + "/"

	table, err := src.FetchCloses(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"AAA.NS", "BBB.NS"}, table.Companies)
	require.Len(t, table.Dates, 3)
	assert.Equal(t, 10.5, table.Closes[0][0])
	assert.True(t, math.IsNaN(table.Closes[0][1]))
	assert.True(t, math.IsNaN(table.Closes[1][0]), "null close is missing")
	assert.Equal(t, 20.0, table.Closes[1][1])
	assert.True(t, math.IsNaN(table.Closes[2][0]))
}

func TestYahooSource_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	src := NewYahooSource([]string{"ZZZ"}, "1y", "", zap.NewNop().Sugar())
	src.BaseURL = srv.URL + "/"

	_, err := src.FetchCloses(context.Background())
	var se *model.SourceError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, se.Msg, "No data found")
}
