package json

import (
	"math"
	"testing"

	"github.com/pbanos/sapling/feature"
)

func TestEncodeDecode(t *testing.T) {
	features := []*feature.ContinuousFeature{
		feature.NewContinuousFeature("height"),
		feature.NewContinuousFeature("weight"),
	}
	ced := NewCriteriaEncodeDecoder(features)
	testCases := []struct {
		criterion feature.ThresholdCriterion
		encoded   string
	}{
		{feature.AtMost(0, 1.5), `{"t":"<=","f":"height","v":"1.5"}`},
		{feature.Below(1, 0.1), `{"t":"<","f":"weight","v":"0.1"}`},
		{feature.Above(1, math.Inf(-1)), `{"t":">","f":"weight","v":"-Inf"}`},
	}
	for _, tc := range testCases {
		data, err := ced.Encode(tc.criterion)
		if err != nil {
			t.Errorf("encoding %v: %v", tc.criterion, err)
			continue
		}
		if string(data) != tc.encoded {
			t.Errorf("expected %s, got %s", tc.encoded, data)
		}
		c, err := ced.Decode(data)
		if err != nil {
			t.Errorf("decoding %s: %v", data, err)
			continue
		}
		if c.Axis() != tc.criterion.Axis() || c.Operator() != tc.criterion.Operator() || c.Threshold() != tc.criterion.Threshold() {
			t.Errorf("expected %v, got %v", tc.criterion, c)
		}
	}
	if _, err := ced.Encode(feature.AtMost(2, 0)); err == nil {
		t.Error("expected error encoding criterion on unknown axis")
	}
}

func TestDecodeErrors(t *testing.T) {
	ced := NewCriteriaEncodeDecoder([]*feature.ContinuousFeature{feature.NewContinuousFeature("x0")})
	testCases := []string{
		`{"t":"<=","f":"x1","v":"1"}`,
		`{"t":"=","f":"x0","v":"1"}`,
		`{"t":"<=","f":"x0","v":"one"}`,
		`{"t":"<=","f":"x0","v":"NaN"}`,
		`[`,
	}
	for _, tc := range testCases {
		if _, err := ced.Decode([]byte(tc)); err == nil {
			t.Errorf("expected error decoding %s", tc)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	for _, v := range []float64{0, -1, 1.0 / 3, 1e-300, math.Inf(1), math.Inf(-1)} {
		s := FormatFloat(v)
		p, err := ParseFloat(s)
		if err != nil {
			t.Errorf("parsing %q: %v", s, err)
			continue
		}
		if p != v {
			t.Errorf("expected %v, got %v from %q", v, p, s)
		}
	}
}

func TestMarshalLeavesOperatorsUnescaped(t *testing.T) {
	data, err := Marshal(map[string]string{"t": "<=", "f": "a&b>c"})
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"f":"a&b>c","t":"<="}`
	if string(data) != expected {
		t.Errorf("expected %s, got %s", expected, data)
	}
}
