// Package stats holds the small numeric helpers used to shape chart inputs.
package stats

import (
	"math"
	"sort"
)

// Bin is one quantile bucket. Lower is exclusive except for the first bin.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Midpoint returns the center of the bin's edges.
func (b Bin) Midpoint() float64 {
	return 0.5 * (b.Lower + b.Upper)
}

// Quantile returns the q-th quantile of sorted using linear interpolation
// between the closest ranks.
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// QuantileEdges returns the q+1 quantile cut points of values with
// duplicate edges collapsed. The result is sorted ascending.
func QuantileEdges(values []float64, q int) []float64 {
	if len(values) == 0 || q <= 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	edges := make([]float64, 0, q+1)
	for i := 0; i <= q; i++ {
		e := Quantile(sorted, float64(i)/float64(q))
		if len(edges) > 0 && e <= edges[len(edges)-1] {
			continue
		}
		edges = append(edges, e)
	}
	return edges
}

// QuantileBins partitions values into at most q buckets of roughly equal
// population. When every value is identical a single degenerate bin is
// returned. Bin counts always sum to len(values).
func QuantileBins(values []float64, q int) []Bin {
	edges := QuantileEdges(values, q)
	switch len(edges) {
	case 0:
		return nil
	case 1:
		return []Bin{{Lower: edges[0], Upper: edges[0], Count: len(values)}}
	}

	bins := make([]Bin, len(edges)-1)
	for i := range bins {
		bins[i] = Bin{Lower: edges[i], Upper: edges[i+1]}
	}
	uppers := edges[1:]
	for _, v := range values {
		// First bin whose upper edge is >= v; the lowest edge is inclusive.
		i := sort.SearchFloat64s(uppers, v)
		if i >= len(bins) {
			i = len(bins) - 1
		}
		bins[i].Count++
	}
	return bins
}
