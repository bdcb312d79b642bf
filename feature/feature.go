/*
Package feature describes the columns of a dataset: the continuous features
examples are made of and the label feature they are classified by, as well as
the threshold criteria used to partition examples on a feature.
*/
package feature

import (
	"fmt"
	"math"
)

/*
Feature represents a property that can be observed
*/
type Feature interface {
	Name() string
	Valid(interface{}) (bool, error)
}

/*
ContinuousFeature represents a property that can be observed and that can take
a real value. Examples are made only of continuous features.
*/
type ContinuousFeature struct {
	name string
}

/*
LabelFeature represents the class of an example: a property that can only take
integer values.
*/
type LabelFeature struct {
	name string
}

/*
NewContinuousFeature takes a name string and returns a continuous feature with
the given name.
*/
func NewContinuousFeature(name string) *ContinuousFeature {
	return &ContinuousFeature{name}
}

/*
NewLabelFeature takes a name string and returns a label feature with the given
name.
*/
func NewLabelFeature(name string) *LabelFeature {
	return &LabelFeature{name}
}

/*
Name returns a string with the name of the feature
*/
func (cf *ContinuousFeature) Name() string {
	return cf.name
}

/*
Valid receives an interface value and returns a boolean and an error. When the
value can be read as a real number it returns true and nil, otherwise it
returns false and an error describing the reason. Undefined (nil) values are
not valid: examples must define every feature.
*/
func (cf *ContinuousFeature) Valid(value interface{}) (bool, error) {
	_, err := cf.Value(value)
	if err != nil {
		return false, err
	}
	return true, nil
}

/*
Value takes a value as read from a data source (a database row, a document)
and returns it as a float64 or an error if it is not a real number.
*/
func (cf *ContinuousFeature) Value(value interface{}) (float64, error) {
	switch v := value.(type) {
	case nil:
		return 0, fmt.Errorf("continuous feature %s has no value", cf.name)
	case float64:
		if math.IsNaN(v) {
			return 0, fmt.Errorf("continuous feature %s got NaN value", cf.name)
		}
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("continuous feature %s expects float64 value, got %T value", cf.name, value)
}

func (cf *ContinuousFeature) String() string {
	return cf.name
}

/*
Name returns a string with the name of the feature
*/
func (lf *LabelFeature) Name() string {
	return lf.name
}

/*
Valid receives an interface value and returns true and nil when it is an
integer label, and false and an error describing the reason otherwise.
*/
func (lf *LabelFeature) Valid(value interface{}) (bool, error) {
	_, err := lf.Value(value)
	if err != nil {
		return false, err
	}
	return true, nil
}

/*
Value takes a value as read from a data source and returns it as an int label.
Real values are accepted only if they have no fractional part, so a label
stored as -1.0 reads as -1.
*/
func (lf *LabelFeature) Value(value interface{}) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, fmt.Errorf("label feature %s has no value", lf.name)
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v) {
			return 0, fmt.Errorf("label feature %s got non integer value %v", lf.name, v)
		}
		return int(v), nil
	}
	return 0, fmt.Errorf("label feature %s expects integer value, got %T value", lf.name, value)
}

func (lf *LabelFeature) String() string {
	return lf.name
}

/*
Names takes a slice of features and returns a slice with their names, in the
same order.
*/
func Names(features []*ContinuousFeature) []string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name()
	}
	return names
}
