package feature

import "fmt"

/*
Metadata describes the columns of a dataset: the continuous features, in the
order they take in each example, and the label feature.
*/
type Metadata struct {
	Features []*ContinuousFeature
	Label    *LabelFeature
}

/*
DefaultMetadata takes a number of features d and returns metadata naming the
features x0, x1, ... x(d-1) and the label y. It describes datasets read from
sources without column names.
*/
func DefaultMetadata(d int) *Metadata {
	md := &Metadata{Label: NewLabelFeature("y")}
	for i := 0; i < d; i++ {
		md.Features = append(md.Features, NewContinuousFeature(fmt.Sprintf("x%d", i)))
	}
	return md
}

/*
FeatureNames returns the names of the metadata's continuous features in order.
*/
func (md *Metadata) FeatureNames() []string {
	return Names(md.Features)
}

/*
Validate returns an error if the metadata has no features, no label or if any
two columns share a name.
*/
func (md *Metadata) Validate() error {
	if len(md.Features) == 0 {
		return fmt.Errorf("metadata has no features")
	}
	if md.Label == nil || md.Label.Name() == "" {
		return fmt.Errorf("metadata has no label feature")
	}
	seen := map[string]bool{md.Label.Name(): true}
	for _, f := range md.Features {
		if f.Name() == "" {
			return fmt.Errorf("metadata has a feature with no name")
		}
		if seen[f.Name()] {
			return fmt.Errorf("metadata defines column %q more than once", f.Name())
		}
		seen[f.Name()] = true
	}
	return nil
}

/*
Axis takes a feature name and returns the axis of the feature with that name
and true, or -1 and false if there is no such feature.
*/
func (md *Metadata) Axis(name string) (int, bool) {
	for i, f := range md.Features {
		if f.Name() == name {
			return i, true
		}
	}
	return -1, false
}
