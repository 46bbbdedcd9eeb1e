// Package stats computes the frequency, mean and quantile summaries the
// dictionary annotates. Every result carries results.Meta so the reporting
// layer can resolve its description; category labels stay raw codes here
// and are substituted later via the dictionary.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/tukushan/simario/internal/results"
)

// Freq counts occurrences of each distinct code in values, optionally
// weighted. Codes order ascending numerically when they all parse as
// numbers, lexically otherwise; the single dimension is named after the
// variable and labeled with the raw codes.
func Freq(values []string, weights []float64, meta results.Meta) (*results.Table, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("freq %s: no values", meta.Varname)
	}
	if weights != nil && len(weights) != len(values) {
		return nil, fmt.Errorf("freq %s: %d values but %d weights", meta.Varname, len(values), len(weights))
	}
	counts := make(map[string]float64, 8)
	for i, v := range values {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		counts[v] += w
	}

	codes := make([]string, 0, len(counts))
	for c := range counts {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codeLess(codes[i], codes[j]) })

	cells := make([]float64, len(codes))
	for i, c := range codes {
		cells[i] = counts[c]
	}

	m := meta
	return &results.Table{
		Meta:  &m,
		Dims:  []results.Dimension{{Name: meta.Varname, Labels: codes}},
		Cells: cells,
	}, nil
}

// GroupedFreq cross-tabulates values by group codes. Categories use the
// flattened "<group> <code>" encoding that MatchFlattenedCodes consumes;
// meta.GrpbyTag should name the grouping variable.
func GroupedFreq(values, groups []string, weights []float64, meta results.Meta) (*results.Table, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("grouped freq %s: no values", meta.Varname)
	}
	if len(groups) != len(values) {
		return nil, fmt.Errorf("grouped freq %s: %d values but %d group codes", meta.Varname, len(values), len(groups))
	}
	if weights != nil && len(weights) != len(values) {
		return nil, fmt.Errorf("grouped freq %s: %d values but %d weights", meta.Varname, len(values), len(weights))
	}

	type cell struct{ group, value string }
	counts := make(map[cell]float64, 16)
	for i, v := range values {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		counts[cell{group: groups[i], value: v}] += w
	}

	cellKeys := make([]cell, 0, len(counts))
	for k := range counts {
		cellKeys = append(cellKeys, k)
	}
	sort.Slice(cellKeys, func(i, j int) bool {
		if cellKeys[i].group != cellKeys[j].group {
			return codeLess(cellKeys[i].group, cellKeys[j].group)
		}
		return codeLess(cellKeys[i].value, cellKeys[j].value)
	})

	labels := make([]string, len(cellKeys))
	cells := make([]float64, len(cellKeys))
	for i, k := range cellKeys {
		labels[i] = k.group + " " + k.value
		cells[i] = counts[k]
	}

	m := meta
	return &results.Table{
		Meta:  &m,
		Dims:  []results.Dimension{{Name: meta.Varname, Labels: labels}},
		Cells: cells,
	}, nil
}

// Mean computes the (optionally weighted) mean of values.
func Mean(values, weights []float64, meta results.Meta) (*results.Scalar, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("mean %s: no values", meta.Varname)
	}
	if weights != nil && len(weights) != len(values) {
		return nil, fmt.Errorf("mean %s: %d values but %d weights", meta.Varname, len(values), len(weights))
	}

	var sum, wsum float64
	for i, v := range values {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		sum += v * w
		wsum += w
	}
	if wsum == 0 {
		return nil, fmt.Errorf("mean %s: zero total weight", meta.Varname)
	}

	m := meta
	return &results.Scalar{Meta: &m, Value: sum / wsum}, nil
}

// MeanByGroup computes the weighted mean of values within each group code.
// The single dimension is named after meta.GrpbyTag and labeled with the
// raw group codes.
func MeanByGroup(values []float64, groups []string, weights []float64, meta results.Meta) (*results.Table, error) {
	if len(groups) != len(values) {
		return nil, fmt.Errorf("grouped mean %s: %d values but %d group codes", meta.Varname, len(values), len(groups))
	}
	if weights != nil && len(weights) != len(values) {
		return nil, fmt.Errorf("grouped mean %s: %d values but %d weights", meta.Varname, len(values), len(weights))
	}

	sums := make(map[string]float64, 8)
	wsums := make(map[string]float64, 8)
	for i, v := range values {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		sums[groups[i]] += v * w
		wsums[groups[i]] += w
	}

	codes := make([]string, 0, len(sums))
	for c := range sums {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codeLess(codes[i], codes[j]) })

	cells := make([]float64, len(codes))
	for i, c := range codes {
		if wsums[c] == 0 {
			return nil, fmt.Errorf("grouped mean %s: zero total weight in group %q", meta.Varname, c)
		}
		cells[i] = sums[c] / wsums[c]
	}

	m := meta
	return &results.Table{
		Meta:  &m,
		Dims:  []results.Dimension{{Name: meta.GrpbyTag, Labels: codes}},
		Cells: cells,
	}, nil
}

// Quantiles computes the given probability points with the linear
// interpolation of order statistics that R's default quantile type uses.
// The single dimension is named after the variable and labeled with the
// probabilities as percentages.
func Quantiles(values []float64, probs []float64, meta results.Meta) (*results.Table, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("quantiles %s: no values", meta.Varname)
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	labels := make([]string, len(probs))
	cells := make([]float64, len(probs))
	for i, p := range probs {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("quantiles %s: probability %v out of [0,1]", meta.Varname, p)
		}
		h := float64(len(sorted)-1) * p
		lo := int(math.Floor(h))
		cells[i] = sorted[lo]
		if frac := h - float64(lo); frac > 0 {
			cells[i] += frac * (sorted[lo+1] - sorted[lo])
		}
		labels[i] = strconv.FormatFloat(p*100, 'f', -1, 64) + "%"
	}

	m := meta
	return &results.Table{
		Meta:  &m,
		Dims:  []results.Dimension{{Name: meta.Varname, Labels: labels}},
		Cells: cells,
	}, nil
}

// codeLess orders numerically when both codes parse as numbers; numeric
// codes sort before non-numeric ones.
func codeLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if fa != fb {
			return fa < fb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}
