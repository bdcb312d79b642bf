/*
Package sapling grows binary classification trees from labelled examples of
real-valued features.

Trees are grown top-down as in CART: on every node the examples are split in
two by the threshold on a single feature that minimises the Gini impurity of
the resulting subsets, weighted by their sizes, until the examples of a node
all share a label or cannot be told apart by their features.
*/
package sapling

// BuildError represents an error growing a tree
type BuildError string

const (
	// ErrEmptyInput is returned when computing impurities, majorities or
	// trees from no examples.
	ErrEmptyInput = BuildError("empty input")

	/*
		ErrDegenerateSplit is returned when no threshold can separate
		the examples of a node whose examples are not all equal, or when
		a split leaves one of its sides empty.
	*/
	ErrDegenerateSplit = BuildError("no split separates the examples")
)

func (be BuildError) Error() string {
	return string(be)
}
