package recorder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"SIPPlanner/internal/model"
)

func openTestDB(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "nested", "history.db"), zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSQLiteRecorder_Projections(t *testing.T) {
	r := openTestDB(t)

	first := &ProjectionRequest{MonthlyInvestment: 1000, WeightedROI: 10.1,
		Points: []model.ProjectionPoint{{Years: 1, FutureValue: 12668.04}}}
	require.NoError(t, r.RecordProjection(first))
	assert.NotEmpty(t, first.ID, "id assigned")
	assert.False(t, first.At.IsZero())

	failed := &ProjectionRequest{MonthlyInvestment: 5, RequestID: "req-2", Error: "analysis unavailable"}
	require.NoError(t, r.RecordProjection(failed))

	got, err := r.RecentProjections(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "req-2", got[0].RequestID)
	assert.Equal(t, "analysis unavailable", got[0].Error)
	assert.Equal(t, first.Points, got[1].Points)

	got, err = r.RecentProjections(1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSQLiteRecorder_AnalysisRuns(t *testing.T) {
	r := openTestDB(t)

	require.NoError(t, r.RecordAnalysis(&AnalysisRun{
		Source: "csv", Days: 250, Companies: 50,
		Ratios:         model.Allocations{{Company: "A", Ratio: 0.6}, {Company: "B", Ratio: 0.4}},
		WeightedAvgROI: 10.1,
	}))
	require.NoError(t, r.RecordAnalysis(&AnalysisRun{Source: "csv", Error: "file missing"}))

	n, err := r.CountAnalysisRuns()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var ratios string
	require.NoError(t, r.db.QueryRow(`SELECT ratios FROM analysis_runs WHERE selected = 2`).Scan(&ratios))
	assert.Equal(t, `{"A":0.6,"B":0.4}`, ratios)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordAnalysis(&AnalysisRun{}))
	assert.NoError(t, r.RecordProjection(&ProjectionRequest{}))
	assert.NoError(t, r.Close())
}
