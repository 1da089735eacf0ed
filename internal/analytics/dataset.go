// Package analytics produces the classification-quality report: dataset
// load, deterministic split, model fitting, scoring and chart artifacts.
package analytics

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
)

const targetColumn = "relevance"

// Dataset is the parsed training table. Features hold every column except
// relevance, row-major.
type Dataset struct {
	Columns   []string
	Features  [][]float64
	Relevance []float64
}

// LoadCSV parses a ';'-separated UTF-8 file with a numeric relevance
// column plus arbitrary feature columns.
func LoadCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("parse %s: no data rows", path)
	}

	header := records[0]
	targetIdx := -1
	columns := make([]string, 0, len(header)-1)
	for i, name := range header {
		if name == targetColumn {
			targetIdx = i
			continue
		}
		columns = append(columns, name)
	}
	if targetIdx < 0 {
		return nil, fmt.Errorf("parse %s: missing %q column", path, targetColumn)
	}

	ds := &Dataset{Columns: columns}
	for line, record := range records[1:] {
		row := make([]float64, 0, len(record)-1)
		for i, cell := range record {
			value, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %s: row %d column %q: %w", path, line+2, header[i], err)
			}
			if i == targetIdx {
				ds.Relevance = append(ds.Relevance, value)
				continue
			}
			row = append(row, value)
		}
		ds.Features = append(ds.Features, row)
	}
	return ds, nil
}

// Labels binarizes relevance against its own median: strictly greater
// becomes 1, everything else 0. The threshold is recomputed from the data
// on every call, never stored.
func (d *Dataset) Labels() []int {
	threshold := median(d.Relevance)
	labels := make([]int, len(d.Relevance))
	for i, value := range d.Relevance {
		if value > threshold {
			labels[i] = 1
		}
	}
	return labels
}

// Split holds the train/test partition.
type Split struct {
	XTrain [][]float64
	XTest  [][]float64
	YTrain []int
	YTest  []int
}

// TrainTestSplit partitions rows with a seeded permutation. The same
// dataset and seed always produce the same rows in the same order.
func (d *Dataset) TrainTestSplit(testFraction float64, seed int64) Split {
	labels := d.Labels()
	n := len(d.Features)
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(float64(n)*testFraction + 0.5)
	if nTest < 1 && n > 1 {
		nTest = 1
	}

	split := Split{}
	for _, idx := range perm[:nTest] {
		split.XTest = append(split.XTest, d.Features[idx])
		split.YTest = append(split.YTest, labels[idx])
	}
	for _, idx := range perm[nTest:] {
		split.XTrain = append(split.XTrain, d.Features[idx])
		split.YTrain = append(split.YTrain, labels[idx])
	}
	return split
}

// Page returns a window of rows for the train-data preview endpoint.
func (d *Dataset) Page(limit, offset int) ([]string, [][]float64) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Features) {
		offset = len(d.Features)
	}
	end := offset + limit
	if limit <= 0 || end > len(d.Features) {
		end = len(d.Features)
	}
	return d.Columns, d.Features[offset:end]
}

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
