package tree

import (
	"context"
	"fmt"
	"sync"
)

// StoreError represents an error related with storing trees
type StoreError string

const (
	// ErrNodeNotFound is returned when a node referenced from a tree is not on its store.
	ErrNodeNotFound = StoreError("node not found")
	// ErrCycle is returned when a node is referenced more than once from a stored tree.
	ErrCycle = StoreError("node referenced more than once")
)

func (se StoreError) Error() string {
	return string(se)
}

/*
Record is the storable form of a node: instead of holding its subtrees it
references them by ID. A leaf record has the Leaf flag set and only its Label
is meaningful; an internal record has a Split and the IDs of its left and right
subtrees.
*/
type Record struct {
	ID      string
	Leaf    bool
	Label   int
	Split   Split
	LeftID  string
	RightID string
}

/*
NodeStore is an interface to manage a store
where node records can be created, retrieved, updated
and deleted.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type NodeStore interface {
	// Create takes a record and stores it for the
	// first time in the store, creating an ID for
	// it and setting it for the record. It returns
	// an error if the record cannot be stored.
	Create(ctx context.Context, r *Record) error
	// Get takes an id and returns the record in the
	// store with that id (or nil if it cannot be
	// found) or an error if the store cannot be
	// queried
	Get(ctx context.Context, id string) (*Record, error)
	// Store takes a record with an ID and stores it,
	// replacing any record with the same ID. It returns
	// an error if the record cannot be stored.
	Store(ctx context.Context, r *Record) error
	// Delete takes a record and deletes it from the store.
	// It returns an error if the record exists but the
	// deletion cannot be performed.
	Delete(ctx context.Context, r *Record) error
	// Close closes the store, implementations should
	// free any resources in use as well as ensure
	// any pending changes are applied before returning
	// (unless the context expires).
	Close(ctx context.Context) error
}

/*
Flatten takes a context, the root node of a tree and a NodeStore and creates
a record for every node of the tree on the store, children before their
parent. It returns the ID of the root's record or an error.
*/
func Flatten(ctx context.Context, n Node, ns NodeStore) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var r *Record
	switch tn := n.(type) {
	case *Leaf:
		r = &Record{Leaf: true, Label: tn.label}
	case *Internal:
		leftID, err := Flatten(ctx, tn.left, ns)
		if err != nil {
			return "", err
		}
		rightID, err := Flatten(ctx, tn.right, ns)
		if err != nil {
			return "", err
		}
		r = &Record{Split: tn.split, LeftID: leftID, RightID: rightID}
	default:
		return "", ErrNilNode
	}
	err := ns.Create(ctx, r)
	if err != nil {
		return "", fmt.Errorf("storing node: %v", err)
	}
	return r.ID, nil
}

/*
Assemble takes a context, a NodeStore and the ID of a root record and rebuilds
the tree stored under it. It returns an error wrapping ErrNodeNotFound if any
record is missing and one wrapping ErrCycle if a record is reachable through
more than one path.
*/
func Assemble(ctx context.Context, ns NodeStore, rootID string) (Node, error) {
	return assemble(ctx, ns, rootID, make(map[string]bool))
}

func assemble(ctx context.Context, ns NodeStore, id string, seen map[string]bool) (Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[id] {
		return nil, fmt.Errorf("%w: %q", ErrCycle, id)
	}
	seen[id] = true
	r, err := ns.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("retrieving node %q: %v", id, err)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	if r.Leaf {
		return NewLeaf(r.Label), nil
	}
	if r.Split.Axis < 0 {
		return nil, fmt.Errorf("node %q splits on negative axis %d", id, r.Split.Axis)
	}
	left, err := assemble(ctx, ns, r.LeftID, seen)
	if err != nil {
		return nil, err
	}
	right, err := assemble(ctx, ns, r.RightID, seen)
	if err != nil {
		return nil, err
	}
	return NewInternal(r.Split, left, right), nil
}

/*
TraverseRecords takes a context, a NodeStore, the ID of a root record, a
bottomup boolean and a function and calls the function with every record of
the tree stored under the root, parents before children unless bottomup is
true. Traversing stops on the first error, which is returned.
*/
func TraverseRecords(ctx context.Context, ns NodeStore, rootID string, bottomup bool, f func(context.Context, *Record) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	r, err := ns.Get(ctx, rootID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, rootID)
	}
	if !bottomup {
		err = f(ctx, r)
		if err != nil {
			return err
		}
	}
	if !r.Leaf {
		for _, id := range []string{r.LeftID, r.RightID} {
			err = TraverseRecords(ctx, ns, id, bottomup, f)
			if err != nil {
				return err
			}
		}
	}
	if bottomup {
		return f(ctx, r)
	}
	return nil
}

type memoryNodeStore struct {
	records map[string]*Record
	lock    *sync.RWMutex
	nextID  uint64
}

// NewMemoryNodeStore returns an implementation
// of NodeStore with the process memory space
// as underlying backend
func NewMemoryNodeStore() NodeStore {
	return &memoryNodeStore{
		records: make(map[string]*Record),
		lock:    &sync.RWMutex{},
	}
}

func (mns *memoryNodeStore) Create(ctx context.Context, r *Record) error {
	return mns.withLock(ctx, func(ctx context.Context) error {
		taken := true
		for taken {
			if err := ctx.Err(); err != nil {
				return err
			}
			mns.nextID++
			r.ID = fmt.Sprintf("%d", mns.nextID)
			_, taken = mns.records[r.ID]
		}
		mns.records[r.ID] = r
		return nil
	})
}

func (mns *memoryNodeStore) Store(ctx context.Context, r *Record) error {
	return mns.withLock(ctx, func(ctx context.Context) error {
		mns.records[r.ID] = r
		return nil
	})
}

func (mns *memoryNodeStore) Get(ctx context.Context, id string) (*Record, error) {
	var r *Record
	err := mns.withRLock(ctx, func(ctx context.Context) error {
		r = mns.records[id]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (mns *memoryNodeStore) Delete(ctx context.Context, r *Record) error {
	return mns.withLock(ctx, func(ctx context.Context) error {
		delete(mns.records, r.ID)
		return nil
	})
}

func (mns *memoryNodeStore) Close(ctx context.Context) error {
	return nil
}

func (mns *memoryNodeStore) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		mns.lock.Lock()
		select {
		case <-ctx.Done():
			mns.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer mns.lock.Unlock()
	}
	return f(ctx)
}

func (mns *memoryNodeStore) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	gotLock := make(chan struct{})
	go func() {
		mns.lock.RLock()
		select {
		case <-ctx.Done():
			mns.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer mns.lock.RUnlock()
	}
	return f(ctx)
}
