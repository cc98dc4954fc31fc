package analysis_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nervasim/nerva/analysis"
	"github.com/nervasim/nerva/kernel"
	"github.com/nervasim/nerva/vp"
)

func TestSummaryStatistics(t *testing.T) {
	analyzer := analysis.NewDrawAnalyzer()

	analyzer.Add(2, 0.2)
	analyzer.Add(2, 0.4)
	analyzer.Add(2, 0.6)

	s := analyzer.Summary(2)
	require.Equal(t, 2, s.VP)
	require.Equal(t, 3, s.Count)
	require.InDelta(t, 0.4, s.Mean, 1e-12)
	require.InDelta(t, 0.04, s.Variance, 1e-12)
	require.Equal(t, 0.2, s.Min)
	require.Equal(t, 0.6, s.Max)
}

func TestSummariesAreSortedByVP(t *testing.T) {
	analyzer := analysis.NewDrawAnalyzer()

	analyzer.Add(3, 0.1)
	analyzer.Add(0, 0.2)
	analyzer.Add(1, 0.3)

	summaries := analyzer.Summaries()
	require.Len(t, summaries, 3)
	require.Equal(t, 0, summaries[0].VP)
	require.Equal(t, 1, summaries[1].VP)
	require.Equal(t, 3, summaries[2].VP)
}

func TestAnalyzerFeedsFromDrawHooks(t *testing.T) {
	layout, _ := vp.MakeLayout(1, 1)
	k := kernel.New(layout)
	require.NoError(t, k.Configure(kernel.Config{TotalVPs: 2, RunSeed: 13}))

	analyzer := analysis.NewDrawAnalyzer()
	k.AcceptHook(analyzer)

	caller := vp.Unit{Rank: 0, Thread: 0}
	elem := k.CreateElement()

	value, ok := k.Draw(elem, caller)
	require.True(t, ok)

	s := analyzer.Summary(elem.VP)
	require.Equal(t, 1, s.Count)
	require.Equal(t, value, s.Mean)
}

func TestCSVBackendWritesSummaries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary")

	backend := analysis.NewCSVBackend(path)
	backend.AddSummary(analysis.VPSummary{
		VP: 0, Count: 2, Mean: 0.5, Variance: 0.01, Min: 0.4, Max: 0.6,
	})
	backend.Flush()

	file, err := os.Open(path + ".csv")
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 2)
	require.Equal(t,
		[]string{"VP", "Count", "Mean", "Variance", "Min", "Max"},
		records[0])
	require.Equal(t, "0", records[1][0])
	require.Equal(t, "2", records[1][1])
}
