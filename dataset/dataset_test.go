package dataset

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/pbanos/sapling/feature"
)

func TestNew(t *testing.T) {
	X := [][]float64{{1, 2}, {3, 4}}
	Y := []int{-1, 1}
	d, err := New(X, Y)
	if err != nil {
		t.Fatal(err)
	}
	X[0][0] = 10
	Y[0] = 10
	if d.Row(0)[0] != 1 || d.Label(0) != -1 {
		t.Errorf("expected dataset to be unaffected by changes to its input, got %v %d", d.Row(0), d.Label(0))
	}
	if d.Len() != 2 || d.Dims() != 2 {
		t.Errorf("expected 2 examples with 2 features, got %v", d)
	}
}

func TestNewErrors(t *testing.T) {
	testCases := []struct {
		X [][]float64
		Y []int
	}{
		{[][]float64{{1}}, []int{1, 2}},
		{nil, nil},
		{[][]float64{{}}, []int{1}},
		{[][]float64{{1, 2}, {1}}, []int{1, 2}},
	}
	for _, tc := range testCases {
		if _, err := New(tc.X, tc.Y); err == nil {
			t.Errorf("expected error building dataset from %v %v", tc.X, tc.Y)
		}
	}
	if _, err := New(nil, nil); err != ErrNoExamples {
		t.Errorf("expected ErrNoExamples, got %v", err)
	}
}

func TestNewRejectsNaN(t *testing.T) {
	_, err := New([][]float64{{0}, {math.NaN()}, {1}, {2}}, []int{-1, -1, 1, 1})
	if !errors.Is(err, ErrNaNFeature) {
		t.Errorf("expected ErrNaNFeature, got %v", err)
	}
	d, err := New([][]float64{{math.Inf(-1)}, {math.Inf(1)}}, []int{-1, 1})
	if err != nil {
		t.Fatalf("expected infinite values to be accepted, got %v", err)
	}
	below, above := d.Below(0, 0), d.Above(0, 0)
	if below.Len()+above.Len() != d.Len() {
		t.Errorf("expected every example on one side of 0, got %d below and %d above", below.Len(), above.Len())
	}
}

func TestSubsets(t *testing.T) {
	d, err := New([][]float64{{3, 0}, {1, 1}, {2, 2}, {1.5, 3}}, []int{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	testCases := []struct {
		subset   *Dataset
		expected []int
	}{
		{d.Below(0, 1.5), []int{2}},
		{d.Above(0, 1.5), []int{1, 3}},
		{d.SubsetWith(feature.AtMost(0, 1.5)), []int{2, 4}},
		{d.Below(1, -1), nil},
	}
	for i, tc := range testCases {
		if !reflect.DeepEqual(tc.subset.Labels(), tc.expected) {
			t.Errorf("case %d: expected labels %v, got %v", i, tc.expected, tc.subset.Labels())
		}
		if tc.subset.Dims() != 2 {
			t.Errorf("case %d: expected 2 features, got %d", i, tc.subset.Dims())
		}
	}
	if d.Len() != 4 {
		t.Errorf("expected subsetting to leave the dataset untouched, got %v", d)
	}
}

func TestPureAndAllSameRows(t *testing.T) {
	d, _ := New([][]float64{{1, 2}, {1, 2}}, []int{3, 3})
	if l, ok := d.Pure(); !ok || l != 3 {
		t.Errorf("expected pure dataset with label 3, got %d %v", l, ok)
	}
	if !d.AllSameRows() {
		t.Error("expected all rows to be the same")
	}
	d, _ = New([][]float64{{1, 2}, {1, 3}}, []int{3, 4})
	if _, ok := d.Pure(); ok {
		t.Error("expected dataset not to be pure")
	}
	if d.AllSameRows() {
		t.Error("expected rows to differ")
	}
	if _, ok := Empty(2).Pure(); ok {
		t.Error("expected empty dataset not to be pure")
	}
}

func TestColumn(t *testing.T) {
	d, _ := New([][]float64{{1, 2}, {3, 4}, {5, 6}}, []int{0, 0, 0})
	if c := d.Column(1); !reflect.DeepEqual(c, []float64{2, 4, 6}) {
		t.Errorf("expected column [2 4 6], got %v", c)
	}
}
