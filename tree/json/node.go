package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/sapling/feature"
	featurejson "github.com/pbanos/sapling/feature/json"
	"github.com/pbanos/sapling/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding node records into slices of
bytes and decoding them back to records.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *tree.Record
	//and returns a slice of bytes with the record
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Record) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Record decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Record, error)
}

type nodeEncodeDecoder struct {
	featurejson.CriteriaEncodeDecoder
}

type node struct {
	ID         string           `json:"id"`
	SubtreeIDs []string         `json:"stIds,omitempty"`
	Criterion  *json.RawMessage `json:"c,omitempty"`
	Label      *int             `json:"label,omitempty"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that uses the
given CriteriaEncodeDecoder to encode/decode the splits of
internal nodes as the criteria satisfied by the examples going left.
*/
func NewNodeEncodeDecoder(ced featurejson.CriteriaEncodeDecoder) NodeEncodeDecoder {
	return &nodeEncodeDecoder{ced}
}

/*
NewFeatureNodeEncodeDecoder takes the names of the features of a tree and
returns a NodeEncodeDecoder for its records.
*/
func NewFeatureNodeEncodeDecoder(features []string) NodeEncodeDecoder {
	cfs := make([]*feature.ContinuousFeature, len(features))
	for i, name := range features {
		cfs[i] = feature.NewContinuousFeature(name)
	}
	return NewNodeEncodeDecoder(featurejson.NewCriteriaEncodeDecoder(cfs))
}

func (ned *nodeEncodeDecoder) Encode(r *tree.Record) ([]byte, error) {
	jn := &node{ID: r.ID}
	if r.Leaf {
		label := r.Label
		jn.Label = &label
		return featurejson.Marshal(jn)
	}
	c, err := ned.CriteriaEncodeDecoder.Encode(feature.AtMost(r.Split.Axis, r.Split.Threshold))
	if err != nil {
		return nil, fmt.Errorf("encoding node %v: %v", r.ID, err)
	}
	rc := json.RawMessage(c)
	jn.Criterion = &rc
	jn.SubtreeIDs = []string{r.LeftID, r.RightID}
	return featurejson.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (*tree.Record, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	r := &tree.Record{ID: jn.ID}
	if jn.Criterion == nil {
		if jn.Label == nil {
			return nil, fmt.Errorf("unmarshalling node %v: leaf has no label", jn.ID)
		}
		r.Leaf = true
		r.Label = *jn.Label
		return r, nil
	}
	if len(jn.SubtreeIDs) != 2 {
		return nil, fmt.Errorf("unmarshalling node %v: expected 2 subtrees, got %d", jn.ID, len(jn.SubtreeIDs))
	}
	c, err := ned.CriteriaEncodeDecoder.Decode(*jn.Criterion)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling node %v: %v", jn.ID, err)
	}
	if c.Operator() != "<=" {
		return nil, fmt.Errorf("unmarshalling node %v: unexpected split operator %s", jn.ID, c.Operator())
	}
	r.Split = tree.Split{Axis: c.Axis(), Threshold: c.Threshold()}
	r.LeftID = jn.SubtreeIDs[0]
	r.RightID = jn.SubtreeIDs[1]
	return r, nil
}
