package sapling

import (
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
)

/*
Partition takes a dataset and a split and returns the subsets of examples
that go left (below) and right (above) of the split, preserving their relative
order: those whose value on the split's axis is lower than or equal to the
threshold and those whose value is greater.
*/
func Partition(d *dataset.Dataset, split tree.Split) (below, above *dataset.Dataset) {
	below = d.SubsetWith(feature.AtMost(split.Axis, split.Threshold))
	above = d.SubsetWith(feature.Above(split.Axis, split.Threshold))
	return below, above
}
