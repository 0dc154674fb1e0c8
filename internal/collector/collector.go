package collector

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"SIPPlanner/internal/calculator"
	"SIPPlanner/internal/model"
)

// MockSource returns a fixed table for development and testing.
type MockSource struct {
	Table *model.PriceTable
	Err   error
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) FetchCloses(_ context.Context) (*model.PriceTable, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Table != nil {
		return m.Table, nil
	}
	return generateMockTable(60), nil
}

// generateMockTable builds four companies with distinct drift and noise so
// the selection always keeps at least one of them.
func generateMockTable(days int) *model.PriceTable {
	companies := []string{"STEADY", "GROWTH", "SWING", "FLAT"}
	drift := []float64{0.004, 0.006, 0.001, 0.0}
	noise := []float64{0.002, 0.02, 0.03, 0.01}
	t := &model.PriceTable{Companies: companies}
	start := time.Now().AddDate(0, 0, -days).Truncate(24 * time.Hour)
	for i := 0; i < days; i++ {
		row := make([]float64, len(companies))
		for j := range companies {
			sign := 1.0
			if i%2 == 1 {
				sign = -1
			}
			row[j] = 100 * math.Pow(1+drift[j], float64(i)) * (1 + sign*noise[j])
		}
		t.Dates = append(t.Dates, start.AddDate(0, 0, i))
		t.Closes = append(t.Closes, row)
	}
	return t
}

// Collector loads closing prices from a Source and cleans them for analysis.
type Collector struct {
	Source Source
	log    *zap.SugaredLogger
}

// NewCollector creates a new Collector.
func NewCollector(src Source, log *zap.SugaredLogger) *Collector {
	return &Collector{Source: src, log: log}
}

// Collect fetches the price table, fills gaps forward then backward, and
// drops companies with no observations.
func (c *Collector) Collect(ctx context.Context) (*model.PriceTable, error) {
	raw, err := c.Source.FetchCloses(ctx)
	if err != nil {
		return nil, err
	}
	table := Clean(raw)
	if dropped := len(raw.Companies) - len(table.Companies); dropped > 0 {
		c.log.Warnf("dropping %d entirely null columns", dropped)
	}
	if len(table.Dates) < 2 {
		return nil, &model.DataError{Msg: "Not enough data points to calculate daily returns. Need at least two rows."}
	}
	if len(table.Companies) == 0 {
		return nil, &model.DataError{Msg: "No company columns with price data."}
	}
	c.log.Infof("collected %d days x %d companies from %s", len(table.Dates), len(table.Companies), c.Source.Name())
	return table, nil
}

// Clean returns a copy of t with gaps filled and empty columns removed.
func Clean(t *model.PriceTable) *model.PriceTable {
	out := &model.PriceTable{Dates: append([]time.Time(nil), t.Dates...)}
	var keep [][]float64
	for j, name := range t.Companies {
		col := calculator.FillMissing(t.Column(j))
		if calculator.AllMissing(col) {
			continue
		}
		out.Companies = append(out.Companies, name)
		keep = append(keep, col)
	}
	out.Closes = make([][]float64, len(out.Dates))
	for i := range out.Dates {
		row := make([]float64, len(keep))
		for j, col := range keep {
			row[j] = col[i]
		}
		out.Closes[i] = row
	}
	return out
}
