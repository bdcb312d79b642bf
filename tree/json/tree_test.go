package json

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/pbanos/sapling/tree"
)

func sampleTree() *tree.Tree {
	root := tree.NewInternal(
		tree.Split{Axis: 0, Threshold: 1.5},
		tree.NewLeaf(-1),
		tree.NewInternal(tree.Split{Axis: 1, Threshold: 0.25}, tree.NewLeaf(0), tree.NewLeaf(1)),
	)
	return tree.New(root, []string{"x0", "x1"}, "y")
}

func TestWriteJSONTree(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSONTree(context.Background(), &buf, sampleTree())
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"rootID":"5","label":"y","features":["x0","x1"],"nodes":[` +
		`{"id":"5","stIds":["1","4"],"c":{"t":"<=","f":"x0","v":"1.5"}},` +
		`{"id":"1","label":-1},` +
		`{"id":"4","stIds":["2","3"],"c":{"t":"<=","f":"x1","v":"0.25"}},` +
		`{"id":"2","label":0},` +
		`{"id":"3","label":1}]}`
	if buf.String() != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, buf.String())
	}
}

func TestWriteJSONTreeUnescapedNames(t *testing.T) {
	var buf bytes.Buffer
	st := tree.New(tree.NewInternal(tree.Split{Axis: 0, Threshold: 2}, tree.NewLeaf(-1), tree.NewLeaf(1)), []string{"a<b"}, "y>0")
	err := WriteJSONTree(context.Background(), &buf, st)
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"rootID":"3","label":"y>0","features":["a<b"],"nodes":[` +
		`{"id":"3","stIds":["1","2"],"c":{"t":"<=","f":"a<b","v":"2"}},` +
		`{"id":"1","label":-1},` +
		`{"id":"2","label":1}]}`
	if buf.String() != expected {
		t.Errorf("expected\n%s\ngot\n%s", expected, buf.String())
	}
}

func TestWriteThenReadJSONTree(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	st := sampleTree()
	err := WriteJSONTree(ctx, &buf, st)
	if err != nil {
		t.Fatal(err)
	}
	rt, err := ReadJSONTree(ctx, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rt, st) {
		t.Errorf("expected %v, got %v", st, rt)
	}
	for _, x := range [][]float64{{1.5, 0}, {2, 0.25}, {2, 0.3}} {
		expected, _ := st.Predict(x)
		got, err := rt.Predict(x)
		if err != nil || got != expected {
			t.Errorf("predicting %v: expected %d, got %d %v", x, expected, got, err)
		}
	}
}

func TestReadJSONTreeErrors(t *testing.T) {
	testCases := []string{
		`{`,
		`{"rootID":"1","features":["x0"],"nodes":[{"id":"1","label":1}]}`,
		`{"label":"y","features":["x0"],"nodes":[{"id":"1","label":1}]}`,
		`{"rootID":"1","label":"y","features":["x0"],"nodes":[{"id":"1"}]}`,
		`{"rootID":"1","label":"y","features":["x0"],"nodes":[{"id":"1","stIds":["2"],"c":{"t":"<=","f":"x0","v":"1"}}]}`,
		`{"rootID":"1","label":"y","features":["x0"],"nodes":[{"id":"1","stIds":["2","3"],"c":{"t":"<=","f":"x0","v":"1"}},{"id":"2","label":1}]}`,
		`{"rootID":"1","label":"y","features":["x0"],"nodes":[{"id":"1","stIds":["2","3"],"c":{"t":"<","f":"x0","v":"1"}}]}`,
		`{"rootID":"1","label":"y","features":["x0"],"nodes":[{"id":"1","stIds":["2","3"],"c":{"t":"<=","f":"z","v":"1"}}]}`,
	}
	for _, tc := range testCases {
		_, err := ReadJSONTree(context.Background(), strings.NewReader(tc))
		if err == nil {
			t.Errorf("expected error reading %s", tc)
		}
	}
}
