package collector

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"SIPPlanner/internal/model"
)

const dateColumn = "Date"

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02-01-2006",
	"2006/01/02",
}

// CSVSource reads a closing price table: a Date column plus one column per
// company. Cells that are not numbers are treated as missing.
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource { return &CSVSource{Path: path} }

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) FetchCloses(_ context.Context) (*model.PriceTable, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &model.SourceError{
				Msg: fmt.Sprintf("The data file %s was not found. Please ensure it exists or set prices.csv_path.", s.Path),
				Err: err,
			}
		}
		return nil, errors.Wrapf(err, "open %s", s.Path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses a closing price table from r.
func ReadCSV(r io.Reader) (*model.PriceTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read csv header")
	}
	dateCol := -1
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")) == dateColumn {
			dateCol = i
			break
		}
	}
	if dateCol < 0 {
		return nil, &model.DataError{Msg: "missing Date column"}
	}

	table := &model.PriceTable{}
	cols := make([]int, 0, len(header)-1)
	for i, h := range header {
		if i == dateCol {
			continue
		}
		cols = append(cols, i)
		table.Companies = append(table.Companies, strings.TrimSpace(h))
	}

	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "read csv line %d", line)
		}
		d, err := parseDate(rec[dateCol])
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = parseClose(rec, c)
		}
		table.Dates = append(table.Dates, d)
		table.Closes = append(table.Closes, row)
	}
	return table, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognised date %q", s)
}

func parseClose(rec []string, col int) float64 {
	if col >= len(rec) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
