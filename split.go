package sapling

import (
	"context"
	"math"
	"sort"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/tree"
	"golang.org/x/sync/errgroup"
)

/*
SelectSplit takes a context and a dataset and returns the split of its
examples with the lowest cost, the sum over both sides of the split of the
number of examples times their Gini impurity, along with that cost.

Every feature is tried, in order, sorting the examples by their value on it
and taking the midpoint between every two consecutive distinct values as
threshold. The first split found with the lowest cost is returned.

If no threshold separates any two examples, tree.NoSplit is returned with the
cost of not splitting the examples, N times their Gini impurity, along with
ErrDegenerateSplit. ErrEmptyInput is returned for an empty dataset.
*/
func SelectSplit(ctx context.Context, d *dataset.Dataset) (tree.Split, float64, error) {
	return selectSplit(ctx, d, 1)
}

type axisSplit struct {
	split tree.Split
	cost  float64
	found bool
}

/*
selectSplit searches for the best split on up to workers axes at a time. The
result of each axis is kept in its own slot and slots are compared in axis
order, so the result does not depend on the number of workers.
*/
func selectSplit(ctx context.Context, d *dataset.Dataset, workers int) (tree.Split, float64, error) {
	if d.Len() == 0 {
		return tree.NoSplit, 0, ErrEmptyInput
	}
	labels := d.Labels()
	classes, k := classIndexes(labels)
	total := make([]int, k)
	for _, c := range classes {
		total[c]++
	}
	results := make([]axisSplit, d.Dims())
	if workers > 1 && d.Dims() > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for axis := range results {
			axis := axis
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[axis] = searchAxis(d, axis, classes, total)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return tree.NoSplit, 0, err
		}
	} else {
		for axis := range results {
			if err := ctx.Err(); err != nil {
				return tree.NoSplit, 0, err
			}
			results[axis] = searchAxis(d, axis, classes, total)
		}
	}
	var best axisSplit
	for _, r := range results {
		if r.found && (!best.found || r.cost < best.cost) {
			best = r
		}
	}
	if !best.found {
		return tree.NoSplit, weightedGini(len(labels), total), ErrDegenerateSplit
	}
	return best.split, best.cost, nil
}

/*
searchAxis returns the best split on the given axis. Class counts on each side
are updated as the boundary moves through the examples sorted by their value
on the axis, so every candidate costs O(classes) to evaluate.
*/
func searchAxis(d *dataset.Dataset, axis int, classes []int, total []int) axisSplit {
	n := d.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return d.Row(order[a])[axis] < d.Row(order[b])[axis]
	})
	left := make([]int, len(total))
	right := append([]int(nil), total...)
	best := axisSplit{cost: math.Inf(1)}
	for i := 0; i < n-1; i++ {
		c := classes[order[i]]
		left[c]++
		right[c]--
		lo, hi := d.Row(order[i])[axis], d.Row(order[i+1])[axis]
		if !(lo < hi) {
			continue
		}
		threshold := midpoint(lo, hi)
		// adjacent floats have no value strictly between them
		if !(lo < threshold && threshold < hi) {
			continue
		}
		cost := weightedGini(i+1, left) + weightedGini(n-i-1, right)
		if !best.found || cost < best.cost {
			best = axisSplit{tree.Split{Axis: axis, Threshold: threshold}, cost, true}
		}
	}
	return best
}

/*
midpoint returns the value halfway between lo and hi without overflowing for
large values of the same sign. An infinite bound is replaced by the largest
finite value on its side, which equals the other bound when both are adjacent.
*/
func midpoint(lo, hi float64) float64 {
	switch {
	case math.IsInf(lo, -1):
		return -math.MaxFloat64
	case math.IsInf(hi, 1):
		return math.MaxFloat64
	}
	m := (lo + hi) / 2
	if math.IsInf(m, 0) {
		m = lo/2 + hi/2
	}
	return m
}
