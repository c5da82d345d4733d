// Package stats computes summary statistics over the catalog for the
// insights overlay and histogram export.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/SandeshR98/scaleview/pkg/model"
)

// Summary describes the distribution of one numeric product attribute.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
	P90    float64
}

// Histogram is a fixed-width binning of one numeric attribute.
type Histogram struct {
	Min, Max float64
	Width    float64
	Counts   []int
}

// Summarize computes a Summary from raw values. Empty input yields the
// zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	return Summary{
		Count:  len(sorted),
		Mean:   mean,
		StdDev: std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, sorted, nil),
	}
}

// Prices extracts the price column.
func Prices(products []model.Product) []float64 {
	out := make([]float64, len(products))
	for i := range products {
		out[i] = products[i].Price
	}
	return out
}

// Ratings extracts the rating column.
func Ratings(products []model.Product) []float64 {
	out := make([]float64, len(products))
	for i := range products {
		out[i] = products[i].Rating
	}
	return out
}

// Bin builds a histogram with the given number of equal-width bins.
// Values at the upper edge land in the last bin.
func Bin(values []float64, bins int) Histogram {
	if len(values) == 0 || bins <= 0 {
		return Histogram{}
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	h := Histogram{Min: min, Max: max, Counts: make([]int, bins)}
	if max == min {
		h.Counts[0] = len(values)
		return h
	}
	h.Width = (max - min) / float64(bins)
	for _, v := range values {
		idx := int((v - min) / h.Width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[idx]++
	}
	return h
}

// MaxCount returns the largest bin count, used for scaling bars.
func (h Histogram) MaxCount() int {
	max := 0
	for _, c := range h.Counts {
		if c > max {
			max = c
		}
	}
	return max
}
