package tree

import (
	"fmt"

	"github.com/pbanos/sapling/dataset"
)

// PredictionError represents an error related with predictions
type PredictionError string

const (
	/*
		ErrDimensionMismatch is returned when the feature values of an example
		do not include the feature a split of the tree is on.
	*/
	ErrDimensionMismatch = PredictionError("example has fewer features than the tree splits on")

	// ErrNilNode is returned when predicting with a nil tree or node.
	ErrNilNode = PredictionError("nil tree cannot predict examples")

	// ErrEmptyDataset is returned when testing a tree against an empty dataset.
	ErrEmptyDataset = PredictionError("cannot test tree against empty dataset")
)

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
Predict takes the root node of a tree and the feature values of an example
and returns the label the tree predicts for it. On every internal node the
example goes left when its value on the split's axis is lower than or equal to
the threshold, and right otherwise.
*/
func Predict(n Node, x []float64) (int, error) {
	for {
		switch tn := n.(type) {
		case *Leaf:
			if tn == nil {
				return 0, ErrNilNode
			}
			return tn.label, nil
		case *Internal:
			if tn == nil {
				return 0, ErrNilNode
			}
			if tn.split.Axis >= len(x) {
				return 0, fmt.Errorf("%w: splitting on x[%d] with %d features", ErrDimensionMismatch, tn.split.Axis, len(x))
			}
			if tn.split.Left(x) {
				n = tn.left
			} else {
				n = tn.right
			}
		default:
			return 0, ErrNilNode
		}
	}
}

/*
PredictAll takes the root node of a tree and the feature values of several
examples and returns the predicted labels, in order.
*/
func PredictAll(n Node, X [][]float64) ([]int, error) {
	result := make([]int, len(X))
	for i, x := range X {
		y, err := Predict(n, x)
		if err != nil {
			return nil, fmt.Errorf("predicting example %d: %w", i, err)
		}
		result[i] = y
	}
	return result, nil
}

/*
Test takes the root node of a tree and a dataset and returns the fraction of
the dataset's examples whose label the tree predicts correctly, or an error
if the dataset is empty or a prediction cannot be made.
*/
func Test(n Node, d *dataset.Dataset) (float64, error) {
	if d.Len() == 0 {
		return 0.0, ErrEmptyDataset
	}
	var hits int
	for i := 0; i < d.Len(); i++ {
		y, err := Predict(n, d.Row(i))
		if err != nil {
			return 0.0, fmt.Errorf("predicting example %d: %w", i, err)
		}
		if y == d.Label(i) {
			hits++
		}
	}
	return float64(hits) / float64(d.Len()), nil
}
