package tree

import (
	"fmt"
	"strings"

	"github.com/pbanos/sapling/dataset"
)

// Tree represents a classification tree. It is composed of
// its root node, the names of the features of the examples it
// classifies, in order, and the name of the label it predicts.
type Tree struct {
	Root     Node
	Features []string
	Label    string
}

// New takes the root Node, the feature names and the label name and
// returns a tree.
func New(root Node, features []string, label string) *Tree {
	return &Tree{root, features, label}
}

// Predict takes the feature values of an example and returns the label the
// tree predicts for it or an error if the prediction could not be made.
func (t *Tree) Predict(x []float64) (int, error) {
	if t == nil {
		return 0, ErrNilNode
	}
	return Predict(t.Root, x)
}

/*
Test takes a dataset and returns the prediction success rate of the tree over
it, or an error if the dataset is empty or any prediction could not be made.
*/
func (t *Tree) Test(d *dataset.Dataset) (float64, error) {
	if t == nil {
		return 0.0, ErrNilNode
	}
	return Test(t.Root, d)
}

func (t *Tree) String() string {
	if t == nil {
		return ""
	}
	return Format(t.Root, t.Features)
}

// Traverse takes a node, a bottomup boolean and an error-returning
// function that takes a node and goes through the tree under the node
// running the function with every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the
// traversing is over, nil is returned.
func Traverse(n Node, bottomup bool, f func(Node) error) error {
	var err error
	if !bottomup {
		err = f(n)
	}
	if err != nil {
		return err
	}
	if in, ok := n.(*Internal); ok {
		for _, sn := range []Node{in.left, in.right} {
			err = Traverse(sn, bottomup, f)
			if err != nil {
				return err
			}
		}
	}
	if bottomup {
		err = f(n)
	}
	return err
}

// Depth returns the number of edges on the longest path from the node to a leaf.
func Depth(n Node) int {
	in, ok := n.(*Internal)
	if !ok {
		return 0
	}
	l, r := Depth(in.left), Depth(in.right)
	if l > r {
		return l + 1
	}
	return r + 1
}

// Size returns the number of nodes in the tree under the node, itself included.
func Size(n Node) int {
	var size int
	Traverse(n, false, func(Node) error {
		size++
		return nil
	})
	return size
}

// Leaves returns the number of leaves in the tree under the node.
func Leaves(n Node) int {
	var leaves int
	Traverse(n, false, func(n Node) error {
		if _, ok := n.(*Leaf); ok {
			leaves++
		}
		return nil
	})
	return leaves
}

/*
Format takes a node and, optionally, the names of the features and returns the
tree under the node drawn as text, one node per line. Splits use the feature
names when available:

	x0 <= 1.5
	|__ -1
	|__ 1
*/
func Format(n Node, features []string) string {
	var b strings.Builder
	for _, line := range formatLines(n, features) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func formatLines(n Node, features []string) []string {
	switch tn := n.(type) {
	case *Leaf:
		return []string{fmt.Sprintf("%d", tn.label)}
	case *Internal:
		name := fmt.Sprintf("x[%d]", tn.split.Axis)
		if tn.split.Axis < len(features) {
			name = features[tn.split.Axis]
		}
		result := []string{fmt.Sprintf("%s <= %v", name, tn.split.Threshold)}
		subtrees := []Node{tn.left, tn.right}
		for i, sn := range subtrees {
			for j, line := range formatLines(sn, features) {
				switch {
				case j == 0:
					result = append(result, "|__ "+line)
				case i == len(subtrees)-1:
					result = append(result, "    "+line)
				default:
					result = append(result, "|   "+line)
				}
			}
		}
		return result
	}
	return []string{"<nil>"}
}
