/*
Package json serializes trees as JSON documents.
*/
package json

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	featurejson "github.com/pbanos/sapling/feature/json"
	"github.com/pbanos/sapling/tree"
)

/*
Header holds the properties of a serialized tree other than its nodes.
*/
type Header struct {
	RootID   string   `json:"rootID"`
	Label    string   `json:"label"`
	Features []string `json:"features"`
}

/*
WriteJSONTree takes a context.Context, an io.Writer and a pointer to a
tree.Tree and serializes the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
  - "rootID": a string with the ID of the node at the root of the tree
  - "label": a string with the name of the label the tree predicts
  - "features": an array with the names of the features of examples, in order
  - "nodes": an array containing the nodes of the tree, parents before
    children, serialized by a NodeEncodeDecoder for the features.

An error is returned if the tree cannot be flattened, serialized or written
onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, w io.Writer, t *tree.Tree) error {
	ns := tree.NewMemoryNodeStore()
	rootID, err := tree.Flatten(ctx, t.Root, ns)
	if err != nil {
		return err
	}
	ned := NewFeatureNodeEncodeDecoder(t.Features)
	err = marshalJSONTreeHeader(&Header{rootID, t.Label, t.Features}, w)
	if err != nil {
		return err
	}
	var i int
	err = tree.TraverseRecords(ctx, ns, rootID, false, func(ctx context.Context, r *tree.Record) error {
		err := writeNode(i, r, ned, w)
		i++
		return err
	})
	if err != nil {
		return err
	}
	return marshalJSONTreeFooter(w)
}

/*
ReadJSONTree takes a context.Context and an io.Reader and returns the tree
unmarshalled from the contents of the io.Reader, in the format written by
WriteJSONTree. An error is returned if the JSON cannot be read from the
io.Reader or its nodes do not make a tree.
*/
func ReadJSONTree(ctx context.Context, r io.Reader) (*tree.Tree, error) {
	dec := json.NewDecoder(r)
	jt := &struct {
		Header
		Nodes []*json.RawMessage `json:"nodes"`
	}{}
	err := dec.Decode(jt)
	if err != nil {
		return nil, err
	}
	if jt.Label == "" {
		return nil, fmt.Errorf("no label feature defined")
	}
	if jt.RootID == "" {
		return nil, fmt.Errorf("no root node id available")
	}
	ned := NewFeatureNodeEncodeDecoder(jt.Features)
	ns := tree.NewMemoryNodeStore()
	for _, jn := range jt.Nodes {
		if jn == nil {
			return nil, fmt.Errorf("null node")
		}
		n, err := ned.Decode(*jn)
		if err != nil {
			return nil, err
		}
		err = ns.Store(ctx, n)
		if err != nil {
			return nil, err
		}
	}
	root, err := tree.Assemble(ctx, ns, jt.RootID)
	if err != nil {
		return nil, err
	}
	return tree.New(root, jt.Features, jt.Label), nil
}

func marshalJSONTreeHeader(h *Header, w io.Writer) error {
	header, err := featurejson.Marshal(h)
	if err != nil {
		return err
	}
	_, err = w.Write(header[:len(header)-1])
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(`,"nodes":[`))
	return err
}

func writeNode(i int, r *tree.Record, ned NodeEncodeDecoder, w io.Writer) error {
	if i != 0 {
		_, err := w.Write([]byte(","))
		if err != nil {
			return err
		}
	}
	jn, err := ned.Encode(r)
	if err != nil {
		return err
	}
	_, err = w.Write(jn)
	return err
}

func marshalJSONTreeFooter(w io.Writer) error {
	_, err := w.Write([]byte(`]}`))
	return err
}
