package sqldataset

import (
	"bytes"
	"fmt"
	"math"
)

/*
Criterion represents a feature.ThresholdCriterion on a samples table: a
condition on a WHERE clause comparing a feature column with a value.
*/
type Criterion struct {
	// Column is the name of the column the condition applies to.
	Column string
	// Operator is one of "<", ">" or "<=", read as Column Operator Value.
	Operator string
	Value    float64
}

/*
WhereClause takes a slice of criteria and a function that returns the
placeholder for the i-th value (starting on 1), and returns a WHERE clause
joining every criterion with AND and the values for its placeholders. If no
criteria are given, it returns an empty string.

Criteria whose value is infinite are translated to constant conditions, as not
every database accepts infinite values as parameters.
*/
func WhereClause(criteria []*Criterion, placeholder func(int) string) (string, []interface{}) {
	if len(criteria) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	var values []interface{}
	buf.WriteString(" WHERE ")
	for i, c := range criteria {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		if math.IsInf(c.Value, 0) {
			buf.WriteString(infiniteCondition(c))
			continue
		}
		values = append(values, c.Value)
		buf.WriteString(fmt.Sprintf(`"%s" %s %s`, c.Column, c.Operator, placeholder(len(values))))
	}
	return buf.String(), values
}

func infiniteCondition(c *Criterion) string {
	if math.IsInf(c.Value, 1) == (c.Operator != ">") {
		return "1 = 1"
	}
	return "1 = 0"
}
