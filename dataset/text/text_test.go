package text

import (
	"bytes"
	"strings"
	"testing"
)

const hw3Sample = `0.757222 0.633831 -1
0.847382 0.281581 -1
0.24931 0.618635 +1

0.538526 0.144259 -1.0
0.474395 0.466541 1
`

func TestRead(t *testing.T) {
	d, err := Read(strings.NewReader(hw3Sample))
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 5 || d.Dims() != 2 {
		t.Fatalf("expected 5 examples with 2 features, got %v", d)
	}
	expectedLabels := []int{-1, -1, 1, -1, 1}
	for i, l := range d.Labels() {
		if l != expectedLabels[i] {
			t.Errorf("example %d: expected label %d, got %d", i, expectedLabels[i], l)
		}
	}
	if d.Row(2)[0] != 0.24931 || d.Row(2)[1] != 0.618635 {
		t.Errorf("expected example 2 to be [0.24931 0.618635], got %v", d.Row(2))
	}
}

func TestReadErrors(t *testing.T) {
	testCases := []string{
		"",
		"\n\n",
		"1\n",
		"1 2 1\n1 1\n",
		"1 a 1\n",
		"1 2 0.5\n",
		"1 2 b\n",
		"1 2 1\nNaN 2 -1\n",
	}
	for _, tc := range testCases {
		_, err := Read(strings.NewReader(tc))
		if err == nil {
			t.Errorf("expected error reading %q", tc)
		}
	}
}

func TestWrite(t *testing.T) {
	d, err := Read(strings.NewReader(hw3Sample))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = Write(&buf, d)
	if err != nil {
		t.Fatal(err)
	}
	expected := "0.757222 0.633831 -1\n0.847382 0.281581 -1\n0.24931 0.618635 1\n0.538526 0.144259 -1\n0.474395 0.466541 1\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
