package analytics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "a;b;relevance\n1;2;0.5\n3;4;0.9\n")
	ds, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ds.Columns)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, ds.Features)
	assert.Equal(t, []float64{0.5, 0.9}, ds.Relevance)
}

func TestLoadCSVMissingRelevance(t *testing.T) {
	path := writeCSV(t, "a;b\n1;2\n")
	_, err := LoadCSV(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relevance")
}

func TestLoadCSVBadCell(t *testing.T) {
	path := writeCSV(t, "a;relevance\nx;1\n")
	_, err := LoadCSV(path)
	require.Error(t, err)
}

func TestLabelsStrictlyAboveMedian(t *testing.T) {
	ds := &Dataset{Relevance: []float64{1, 2, 3, 4, 5}}
	assert.Equal(t, []int{0, 0, 0, 1, 1}, ds.Labels())
}

func TestLabelsEvenCountMedian(t *testing.T) {
	// Median of {1,2,3,4} is 2.5, so exactly half the rows are positive.
	ds := &Dataset{Relevance: []float64{1, 2, 3, 4}}
	assert.Equal(t, []int{0, 0, 1, 1}, ds.Labels())
}

func TestLabelsAllEqual(t *testing.T) {
	ds := &Dataset{Relevance: []float64{2, 2, 2}}
	assert.Equal(t, []int{0, 0, 0}, ds.Labels())
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	ds := &Dataset{
		Features:  [][]float64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}, {10}},
		Relevance: []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}
	first := ds.TrainTestSplit(0.2, 42)
	second := ds.TrainTestSplit(0.2, 42)
	assert.Equal(t, first, second)
	assert.Len(t, first.XTest, 2)
	assert.Len(t, first.XTrain, 8)
	assert.Len(t, first.YTest, 2)
	assert.Len(t, first.YTrain, 8)
}

func TestTrainTestSplitPartitions(t *testing.T) {
	ds := &Dataset{
		Features:  [][]float64{{1}, {2}, {3}, {4}, {5}},
		Relevance: []float64{1, 2, 3, 4, 5},
	}
	split := ds.TrainTestSplit(0.2, 42)

	seen := map[float64]int{}
	for _, row := range split.XTrain {
		seen[row[0]]++
	}
	for _, row := range split.XTest {
		seen[row[0]]++
	}
	assert.Len(t, seen, 5)
	for value, count := range seen {
		assert.Equal(t, 1, count, "row %v should appear exactly once", value)
	}
}

func TestPage(t *testing.T) {
	ds := &Dataset{
		Columns:   []string{"a"},
		Features:  [][]float64{{1}, {2}, {3}, {4}},
		Relevance: []float64{1, 2, 3, 4},
	}

	columns, rows := ds.Page(2, 1)
	assert.Equal(t, []string{"a"}, columns)
	assert.Equal(t, [][]float64{{2}, {3}}, rows)

	_, rows = ds.Page(10, 2)
	assert.Equal(t, [][]float64{{3}, {4}}, rows)

	_, rows = ds.Page(2, 100)
	assert.Empty(t, rows)
}
