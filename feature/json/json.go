/*
Package json encodes and decodes feature criteria as JSON.
*/
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/pbanos/sapling/feature"
)

/*
CriteriaEncodeDecoder is an interface for objects
that allow encoding criteria into slices of
bytes and decoding them back to criteria.
*/
type CriteriaEncodeDecoder interface {

	//Encode receives a feature.ThresholdCriterion
	//and returns a slice of bytes with the criterion
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(feature.ThresholdCriterion) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a feature.ThresholdCriterion decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (feature.ThresholdCriterion, error)
}

type jsonCriteriaEncodeDecoder []*feature.ContinuousFeature

type jsonCriterion struct {
	Operator string `json:"t"`
	Feature  string `json:"f"`
	Value    string `json:"v"`
}

// NewCriteriaEncodeDecoder takes a slice of features, in the
// order they take on examples, and returns a CriteriaEncodeDecoder
// that marshals and unmarshals criteria into/from slices of bytes
// as JSON.
// Specifically, criteria are encoded as a JSON object
// with an "f" property set to the name of the feature
// of the criterion, a "t" property with the comparison operator
// ("<", ">" or "<=") and a "v" property with the threshold
// written as a string, so that infinite thresholds can be
// written as "-Inf" and "+Inf".
func NewCriteriaEncodeDecoder(features []*feature.ContinuousFeature) CriteriaEncodeDecoder {
	return jsonCriteriaEncodeDecoder(features)
}

func (jced jsonCriteriaEncodeDecoder) Encode(tc feature.ThresholdCriterion) ([]byte, error) {
	if tc.Axis() < 0 || tc.Axis() >= len(jced) {
		return nil, fmt.Errorf("criterion on axis %d with %d features", tc.Axis(), len(jced))
	}
	return Marshal(&jsonCriterion{
		Operator: tc.Operator(),
		Feature:  jced[tc.Axis()].Name(),
		Value:    FormatFloat(tc.Threshold()),
	})
}

/*
Marshal returns the JSON encoding of v like json.Marshal, but leaves the
characters <, > and & unescaped so comparison operators read as written.
*/
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(v)
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func (jced jsonCriteriaEncodeDecoder) Decode(data []byte) (feature.ThresholdCriterion, error) {
	jc := &jsonCriterion{}
	err := json.Unmarshal(data, jc)
	if err != nil {
		return nil, err
	}
	return jc.Criterion(jced)
}

/*
Criterion takes the features in the order they take on examples and returns
the criterion the JSON criterion represents or an error if its feature or
operator are unknown or its value is not a number.
*/
func (jc *jsonCriterion) Criterion(features []*feature.ContinuousFeature) (feature.ThresholdCriterion, error) {
	axis := -1
	for i, f := range features {
		if f.Name() == jc.Feature {
			axis = i
			break
		}
	}
	if axis < 0 {
		return nil, fmt.Errorf("unknown feature '%s'", jc.Feature)
	}
	v, err := ParseFloat(jc.Value)
	if err != nil {
		return nil, err
	}
	switch jc.Operator {
	case "<":
		return feature.Below(axis, v), nil
	case ">":
		return feature.Above(axis, v), nil
	case "<=":
		return feature.AtMost(axis, v), nil
	}
	return nil, fmt.Errorf("unknown feature criterion operator '%s'", jc.Operator)
}

/*
FormatFloat returns the shortest string that ParseFloat reads back as the
given value. Infinite values are written as "-Inf" and "+Inf".
*/
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, -1):
		return "-Inf"
	case math.IsInf(v, 1):
		return "+Inf"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ParseFloat reads a value written by FormatFloat.
func ParseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing value %q: %v", s, err)
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("parsing value %q: not a number", s)
	}
	return v, nil
}
