package feature

import (
	"fmt"
)

/*
Criterion represents a constraint on the feature at a given axis of an
example.

Its SatisfiedBy method takes the feature values of an example and returns a
boolean indicating if they satisfy the criterion. The values are expected to
have at least Axis()+1 elements.

Its Axis method returns the index of the feature on which the criterion is
applied.
*/
type Criterion interface {
	Axis() int
	SatisfiedBy(x []float64) bool
}

/*
ThresholdCriterion represents a constraint that compares the value of a
feature with a threshold.

Its Threshold method returns the value the feature is compared with, and its
Operator method the comparison operator as written in SQL ("<", ">" or "<=").
*/
type ThresholdCriterion interface {
	Criterion
	Threshold() float64
	Operator() string
}

type comparison int

const (
	lessThan comparison = iota
	greaterThan
	atMost
)

type thresholdCriterion struct {
	axis      int
	threshold float64
	cmp       comparison
}

/*
Below takes an axis and a threshold and returns a criterion satisfied by
examples whose feature at the axis is strictly lower than the threshold.
*/
func Below(axis int, threshold float64) ThresholdCriterion {
	return &thresholdCriterion{axis, threshold, lessThan}
}

/*
Above takes an axis and a threshold and returns a criterion satisfied by
examples whose feature at the axis is strictly greater than the threshold.
*/
func Above(axis int, threshold float64) ThresholdCriterion {
	return &thresholdCriterion{axis, threshold, greaterThan}
}

/*
AtMost takes an axis and a threshold and returns a criterion satisfied by
examples whose feature at the axis is lower than or equal to the threshold.
It is the criterion that routes examples to the left of a split when
predicting.
*/
func AtMost(axis int, threshold float64) ThresholdCriterion {
	return &thresholdCriterion{axis, threshold, atMost}
}

func (tc *thresholdCriterion) Axis() int {
	return tc.axis
}

func (tc *thresholdCriterion) Threshold() float64 {
	return tc.threshold
}

func (tc *thresholdCriterion) SatisfiedBy(x []float64) bool {
	v := x[tc.axis]
	switch tc.cmp {
	case lessThan:
		return v < tc.threshold
	case greaterThan:
		return v > tc.threshold
	default:
		return v <= tc.threshold
	}
}

func (tc *thresholdCriterion) Operator() string {
	switch tc.cmp {
	case lessThan:
		return "<"
	case greaterThan:
		return ">"
	}
	return "<="
}

func (tc *thresholdCriterion) String() string {
	return fmt.Sprintf("x[%d] %s %f", tc.axis, tc.Operator(), tc.threshold)
}
