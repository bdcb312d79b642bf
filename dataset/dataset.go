/*
Package dataset provides the in-memory collection of labelled examples trees
are grown from: an ordered sequence of feature vectors of the same length
paired with their integer class labels.
*/
package dataset

import (
	"fmt"
	"math"

	"github.com/pbanos/sapling/feature"
)

// DatasetError represents an error building a dataset
type DatasetError string

const (
	// ErrLengthMismatch is returned when the number of feature
	// vectors and labels differ.
	ErrLengthMismatch = DatasetError("number of examples and labels differ")
	// ErrRaggedRows is returned when examples do not all have
	// the same number of features.
	ErrRaggedRows = DatasetError("examples have different number of features")
	// ErrNoFeatures is returned when examples have no features.
	ErrNoFeatures = DatasetError("examples have no features")
	// ErrNoExamples is returned by New when given no examples,
	// use Empty to build datasets with no examples.
	ErrNoExamples = DatasetError("no examples given")
	// ErrNaNFeature is returned when a feature value is not a number, as
	// it compares neither below nor above any threshold.
	ErrNaNFeature = DatasetError("feature value is not a number")
)

func (de DatasetError) Error() string {
	return string(de)
}

/*
Dataset is an immutable ordered collection of examples. Rows are shared
between a dataset and the subsets obtained from it, but never modified.
*/
type Dataset struct {
	x    [][]float64
	y    []int
	dims int
}

/*
New takes a slice of feature vectors X and a slice of labels Y and returns a
dataset with them or an error if they do not have the same length, if any
vector has no features, if vectors have different lengths or if any value is
NaN. Infinite values are accepted.
The given slices are copied, so modifying them afterwards does not affect the
dataset. An empty dataset can only be built with Empty.
*/
func New(X [][]float64, Y []int) (*Dataset, error) {
	if len(X) != len(Y) {
		return nil, fmt.Errorf("%v: %d examples, %d labels", ErrLengthMismatch, len(X), len(Y))
	}
	if len(X) == 0 {
		return nil, ErrNoExamples
	}
	dims := len(X[0])
	if dims == 0 {
		return nil, ErrNoFeatures
	}
	d := &Dataset{
		x:    make([][]float64, len(X)),
		y:    make([]int, len(Y)),
		dims: dims,
	}
	for i, row := range X {
		if len(row) != dims {
			return nil, fmt.Errorf("%v: example %d has %d features, expected %d", ErrRaggedRows, i, len(row), dims)
		}
		for j, v := range row {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: example %d, feature %d", ErrNaNFeature, i, j)
			}
		}
		d.x[i] = append([]float64(nil), row...)
	}
	copy(d.y, Y)
	return d, nil
}

/*
Empty takes a number of features dims and returns a dataset with no examples
whose examples would have dims features.
*/
func Empty(dims int) *Dataset {
	return &Dataset{dims: dims}
}

// Len returns the number of examples in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.y)
}

// Dims returns the number of features of each example.
func (d *Dataset) Dims() int {
	return d.dims
}

// Row returns the feature values of the i-th example. It must not be modified.
func (d *Dataset) Row(i int) []float64 {
	return d.x[i]
}

// Label returns the label of the i-th example.
func (d *Dataset) Label(i int) int {
	return d.y[i]
}

/*
Labels returns a copy of the labels of the examples in the dataset, in order.
*/
func (d *Dataset) Labels() []int {
	return append([]int(nil), d.y...)
}

/*
Features returns the feature vectors of the examples in the dataset, in order.
The returned slice is a copy but the vectors are shared and must not be
modified.
*/
func (d *Dataset) Features() [][]float64 {
	return append([][]float64(nil), d.x...)
}

/*
SubsetWith takes a feature.Criterion and returns the subset of examples that
satisfy it, in the same relative order.
*/
func (d *Dataset) SubsetWith(c feature.Criterion) *Dataset {
	result := &Dataset{dims: d.dims}
	for i, row := range d.x {
		if c.SatisfiedBy(row) {
			result.x = append(result.x, row)
			result.y = append(result.y, d.y[i])
		}
	}
	return result
}

/*
Below takes an axis and a threshold and returns the subset of examples whose
feature at the axis is strictly below the threshold.
*/
func (d *Dataset) Below(axis int, threshold float64) *Dataset {
	return d.SubsetWith(feature.Below(axis, threshold))
}

/*
Above takes an axis and a threshold and returns the subset of examples whose
feature at the axis is strictly above the threshold.
*/
func (d *Dataset) Above(axis int, threshold float64) *Dataset {
	return d.SubsetWith(feature.Above(axis, threshold))
}

/*
Pure returns the label of the examples and true if all the examples in the
dataset share the same label. Otherwise, or if the dataset is empty, it returns
0 and false.
*/
func (d *Dataset) Pure() (int, bool) {
	if d.Len() == 0 {
		return 0, false
	}
	for _, l := range d.y[1:] {
		if l != d.y[0] {
			return 0, false
		}
	}
	return d.y[0], true
}

/*
AllSameRows returns true if every example in the dataset has the same values
on every feature, that is, if no split can separate any two examples.
*/
func (d *Dataset) AllSameRows() bool {
	if d.Len() == 0 {
		return true
	}
	first := d.x[0]
	for _, row := range d.x[1:] {
		for j, v := range row {
			if v != first[j] {
				return false
			}
		}
	}
	return true
}

/*
Column takes an axis and returns the values of the feature at the axis for
every example, in order.
*/
func (d *Dataset) Column(axis int) []float64 {
	result := make([]float64, len(d.x))
	for i, row := range d.x {
		result[i] = row[axis]
	}
	return result
}

func (d *Dataset) String() string {
	return fmt.Sprintf("{Dataset %d examples x %d features}", d.Len(), d.dims)
}
