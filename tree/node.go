/*
Package tree provides the binary decision trees grown by sapling: immutable
nodes, prediction, traversal, rendering and persistence of nodes on stores.
*/
package tree

import (
	"fmt"
	"math"
)

/*
Node is a node of a binary decision tree. It is either a *Leaf, that predicts
a label, or an *Internal node, that routes examples to one of its two
children according to a Split.

Nodes are immutable: they are built in one step with NewLeaf and NewInternal
and every child is owned by a single parent.
*/
type Node interface {
	fmt.Stringer
	isNode()
}

/*
Split represents a test on the feature at Axis: examples whose value is lower
than or equal to Threshold go left (below), the rest go right (above).
*/
type Split struct {
	Axis      int
	Threshold float64
}

/*
NoSplit is the split meaning that no split is possible: on axis 0 with a -Inf
threshold, every example would go right.
*/
var NoSplit = Split{0, math.Inf(-1)}

// IsNoSplit returns whether the split is the NoSplit sentinel.
func (s Split) IsNoSplit() bool {
	return s.Axis == NoSplit.Axis && math.IsInf(s.Threshold, -1)
}

// Left returns whether the given feature values go left on the split.
func (s Split) Left(x []float64) bool {
	return x[s.Axis] <= s.Threshold
}

func (s Split) String() string {
	return fmt.Sprintf("x[%d] <= %v", s.Axis, s.Threshold)
}

// Leaf is a terminal node predicting a label.
type Leaf struct {
	label int
}

// Internal is a node that splits examples between two subtrees.
type Internal struct {
	split       Split
	left, right Node
}

// NewLeaf returns a leaf predicting the given label.
func NewLeaf(label int) *Leaf {
	return &Leaf{label}
}

/*
NewInternal takes a split and the subtrees for the examples going left
(below) and right (above) of it and returns an internal node joining them.
It panics if any subtree is nil.
*/
func NewInternal(split Split, left, right Node) *Internal {
	if left == nil || right == nil {
		panic("tree: internal node with nil subtree")
	}
	return &Internal{split, left, right}
}

// Label returns the label predicted by the leaf.
func (l *Leaf) Label() int {
	return l.label
}

func (l *Leaf) String() string {
	return fmt.Sprintf("Leaf(%d)", l.label)
}

func (*Leaf) isNode() {}

// Split returns the split of the node.
func (in *Internal) Split() Split {
	return in.split
}

// Left returns the subtree for the examples satisfying the split.
func (in *Internal) Left() Node {
	return in.left
}

// Right returns the subtree for the examples not satisfying the split.
func (in *Internal) Right() Node {
	return in.right
}

func (in *Internal) String() string {
	return fmt.Sprintf("Internal(%v, %v, %v)", in.split, in.left, in.right)
}

func (*Internal) isNode() {}
