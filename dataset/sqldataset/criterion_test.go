package sqldataset

import (
	"fmt"
	"math"
	"testing"
)

func TestWhereClause(t *testing.T) {
	dollar := func(i int) string { return fmt.Sprintf("$%d", i) }
	testCases := []struct {
		criteria []*Criterion
		clause   string
		values   []interface{}
	}{
		{nil, "", nil},
		{
			[]*Criterion{{Column: "x0", Operator: "<", Value: 1.5}},
			` WHERE "x0" < $1`,
			[]interface{}{1.5},
		},
		{
			[]*Criterion{{Column: "x0", Operator: ">", Value: 1.5}, {Column: "x1", Operator: "<=", Value: -2}},
			` WHERE "x0" > $1 AND "x1" <= $2`,
			[]interface{}{1.5, -2.0},
		},
		{
			[]*Criterion{{Column: "x0", Operator: ">", Value: math.Inf(-1)}, {Column: "x1", Operator: "<", Value: 3}},
			` WHERE 1 = 1 AND "x1" < $1`,
			[]interface{}{3.0},
		},
		{
			[]*Criterion{{Column: "x0", Operator: "<=", Value: math.Inf(-1)}},
			` WHERE 1 = 0`,
			nil,
		},
	}
	for i, tc := range testCases {
		clause, values := WhereClause(tc.criteria, dollar)
		if clause != tc.clause {
			t.Errorf("case %d: expected clause %q, got %q", i, tc.clause, clause)
		}
		if len(values) != len(tc.values) {
			t.Errorf("case %d: expected values %v, got %v", i, tc.values, values)
			continue
		}
		for j := range values {
			if values[j] != tc.values[j] {
				t.Errorf("case %d: expected values %v, got %v", i, tc.values, values)
			}
		}
	}
}
