package sapling

import (
	"context"
	"fmt"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/tree"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

/*
Builder grows trees from datasets. It should be initialized with NewBuilder.
A Builder holds no state between builds and can be used concurrently.
*/
type Builder struct {
	workers         int
	minParallelSize int
}

// Workers sets the parallelism of builds: up to n subtrees grow at the same
// time and each of them searches splits on up to n features at a time, so a
// build may run up to n*n goroutines. Values lower than 2 make builds
// sequential.
func Workers(n int) func(*Builder) {
	return func(b *Builder) {
		b.workers = n
	}
}

// MinParallelSize sets the minimum number of examples a node must have for
// its split search and subtrees to be processed concurrently.
func MinParallelSize(n int) func(*Builder) {
	return func(b *Builder) {
		b.minParallelSize = n
	}
}

// NewBuilder returns a configured Builder. If no options are passed,
// the returned Builder will be equivalent to the following call:
//
//	b := NewBuilder(Workers(1), MinParallelSize(64))
func NewBuilder(options ...func(*Builder)) *Builder {
	b := &Builder{
		workers:         1,
		minParallelSize: 64,
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

/*
Build takes a context and a dataset and grows a tree for it with a default
Builder.
*/
func Build(ctx context.Context, d *dataset.Dataset) (tree.Node, error) {
	return NewBuilder().Build(ctx, d)
}

/*
Build takes a context and a dataset and returns the root of the tree grown
from its examples:
  - if all the examples share a label, a leaf predicting it
  - if all the examples have the same feature values, a leaf predicting the
    majority label
  - otherwise an internal node with the split returned by SelectSplit and
    the trees grown from the examples on each of its sides.

The tree is the same regardless of the number of workers. ErrEmptyInput is
returned for an empty or nil dataset, and an error wrapping
ErrDegenerateSplit if examples that are not equal cannot be split. If the
context is cancelled the build stops and the context's error is returned.
*/
func (b *Builder) Build(ctx context.Context, d *dataset.Dataset) (tree.Node, error) {
	if d.Len() == 0 {
		return nil, ErrEmptyInput
	}
	var sem *semaphore.Weighted
	if b.workers > 1 {
		sem = semaphore.NewWeighted(int64(b.workers - 1))
	}
	return b.build(ctx, d, sem)
}

func (b *Builder) build(ctx context.Context, d *dataset.Dataset, sem *semaphore.Weighted) (tree.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if label, ok := d.Pure(); ok {
		return tree.NewLeaf(label), nil
	}
	if d.AllSameRows() {
		label, err := Majority(d.Labels())
		if err != nil {
			return nil, err
		}
		return tree.NewLeaf(label), nil
	}
	parallel := sem != nil && d.Len() >= b.minParallelSize
	workers := 1
	if parallel {
		workers = b.workers
	}
	split, _, err := selectSplit(ctx, d, workers)
	if err != nil {
		return nil, fmt.Errorf("splitting %d examples: %w", d.Len(), err)
	}
	below, above := Partition(d, split)
	if below.Len() == 0 || above.Len() == 0 {
		return nil, fmt.Errorf("%w: %v leaves %d examples below and %d above", ErrDegenerateSplit, split, below.Len(), above.Len())
	}
	var left, right tree.Node
	if parallel && sem.TryAcquire(1) {
		var g errgroup.Group
		g.Go(func() error {
			defer sem.Release(1)
			var err error
			left, err = b.build(ctx, below, sem)
			return err
		})
		right, err = b.build(ctx, above, sem)
		if lerr := g.Wait(); lerr != nil {
			return nil, lerr
		}
		if err != nil {
			return nil, err
		}
	} else {
		left, err = b.build(ctx, below, sem)
		if err != nil {
			return nil, err
		}
		right, err = b.build(ctx, above, sem)
		if err != nil {
			return nil, err
		}
	}
	return tree.NewInternal(split, left, right), nil
}
