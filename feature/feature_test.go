package feature

import (
	"math"
	"testing"
)

func TestContinuousFeatureValue(t *testing.T) {
	f := NewContinuousFeature("x")
	testCases := []struct {
		value    interface{}
		expected float64
		valid    bool
	}{
		{1.5, 1.5, true},
		{float32(0.5), 0.5, true},
		{3, 3, true},
		{int64(-2), -2, true},
		{nil, 0, false},
		{math.NaN(), 0, false},
		{"1.5", 0, false},
	}
	for _, tc := range testCases {
		v, err := f.Value(tc.value)
		if (err == nil) != tc.valid {
			t.Errorf("value %v: expected valid %v, got error %v", tc.value, tc.valid, err)
			continue
		}
		if tc.valid && v != tc.expected {
			t.Errorf("value %v: expected %v, got %v", tc.value, tc.expected, v)
		}
		if ok, _ := f.Valid(tc.value); ok != tc.valid {
			t.Errorf("value %v: expected Valid to return %v", tc.value, tc.valid)
		}
	}
}

func TestLabelFeatureValue(t *testing.T) {
	f := NewLabelFeature("y")
	testCases := []struct {
		value    interface{}
		expected int
		valid    bool
	}{
		{1, 1, true},
		{int64(-1), -1, true},
		{int32(2), 2, true},
		{-1.0, -1, true},
		{0.5, 0, false},
		{math.Inf(1), 0, false},
		{nil, 0, false},
		{"1", 0, false},
	}
	for _, tc := range testCases {
		v, err := f.Value(tc.value)
		if (err == nil) != tc.valid {
			t.Errorf("value %v: expected valid %v, got error %v", tc.value, tc.valid, err)
			continue
		}
		if tc.valid && v != tc.expected {
			t.Errorf("value %v: expected %v, got %v", tc.value, tc.expected, v)
		}
	}
}

func TestCriteria(t *testing.T) {
	x := []float64{0, 1.5}
	testCases := []struct {
		c        ThresholdCriterion
		expected bool
		op       string
	}{
		{Below(1, 1.5), false, "<"},
		{Below(1, 2), true, "<"},
		{Above(1, 1.5), false, ">"},
		{Above(0, -1), true, ">"},
		{AtMost(1, 1.5), true, "<="},
		{AtMost(0, math.Inf(-1)), false, "<="},
	}
	for _, tc := range testCases {
		if tc.c.SatisfiedBy(x) != tc.expected {
			t.Errorf("expected %v satisfied by %v to be %v", tc.c, x, tc.expected)
		}
		if tc.c.Operator() != tc.op {
			t.Errorf("expected operator %s for %v, got %s", tc.op, tc.c, tc.c.Operator())
		}
	}
}

func TestMetadata(t *testing.T) {
	md := DefaultMetadata(3)
	if err := md.Validate(); err != nil {
		t.Errorf("unexpected error validating default metadata: %v", err)
	}
	if axis, ok := md.Axis("x2"); !ok || axis != 2 {
		t.Errorf("expected x2 on axis 2, got %d %v", axis, ok)
	}
	if _, ok := md.Axis("y"); ok {
		t.Error("expected label not to have an axis")
	}
	invalid := []*Metadata{
		{Label: NewLabelFeature("y")},
		{Features: []*ContinuousFeature{NewContinuousFeature("x")}},
		{Features: []*ContinuousFeature{NewContinuousFeature("x"), NewContinuousFeature("x")}, Label: NewLabelFeature("y")},
		{Features: []*ContinuousFeature{NewContinuousFeature("y")}, Label: NewLabelFeature("y")},
		{Features: []*ContinuousFeature{NewContinuousFeature("")}, Label: NewLabelFeature("y")},
	}
	for i, md := range invalid {
		if err := md.Validate(); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}
