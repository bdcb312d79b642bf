/*
Package mongodataset provides datasets stored on a MongoDB collection, one
document per example with a field per feature and one for the label.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
Dataset is a set of examples stored on the samples collection of a MongoDB
database, optionally restricted to those satisfying some criteria.
*/
type Dataset struct {
	session  *mgo.Session
	md       *feature.Metadata
	criteria []feature.ThresholdCriterion
}

const (
	samplesCollectionName = "samples"
)

var operators = map[string]string{
	"<":  "$lt",
	">":  "$gt",
	"<=": "$lte",
}

/*
Open takes a MongoDB database session and the metadata of the examples and
returns a Dataset that works on the default database for that session or an
error if the metadata is not valid or the collection indexes cannot be
ensured.
*/
func Open(ctx context.Context, session *mgo.Session, md *feature.Metadata) (*Dataset, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	mds := &Dataset{session: session, md: md}
	err := mds.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return mds, nil
}

// Metadata returns the metadata of the dataset's examples.
func (mds *Dataset) Metadata() *feature.Metadata {
	return mds.md
}

/*
SubsetWith takes a feature.ThresholdCriterion and returns the subset of the
dataset's examples that also satisfy it.
*/
func (mds *Dataset) SubsetWith(c feature.ThresholdCriterion) (*Dataset, error) {
	if c.Axis() < 0 || c.Axis() >= len(mds.md.Features) {
		return nil, fmt.Errorf("criterion on axis %d for dataset with %d features", c.Axis(), len(mds.md.Features))
	}
	criteria := make([]feature.ThresholdCriterion, len(mds.criteria), len(mds.criteria)+1)
	copy(criteria, mds.criteria)
	return &Dataset{mds.session, mds.md, append(criteria, c)}, nil
}

// Count returns the number of examples in the dataset.
func (mds *Dataset) Count(context.Context) (int, error) {
	n, err := mds.query().Count()
	if err != nil {
		return 0, fmt.Errorf("counting samples: %v", err)
	}
	return n, nil
}

/*
Load reads every example in the dataset, in insertion order, and returns them
as an in-memory dataset. Documents missing any feature or the label produce an
error.
*/
func (mds *Dataset) Load(ctx context.Context) (*dataset.Dataset, error) {
	var X [][]float64
	var Y []int
	var doc bson.M
	iter := mds.query().Sort("_id").Iter()
	defer iter.Close()
	for i := 0; iter.Next(&doc); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x := make([]float64, len(mds.md.Features))
		for j, f := range mds.md.Features {
			v, err := f.Value(doc[f.Name()])
			if err != nil {
				return nil, fmt.Errorf("loading sample %d: %v", i, err)
			}
			x[j] = v
		}
		y, err := mds.md.Label.Value(doc[mds.md.Label.Name()])
		if err != nil {
			return nil, fmt.Errorf("loading sample %d: %v", i, err)
		}
		X = append(X, x)
		Y = append(Y, y)
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("loading samples: %v", err)
	}
	if len(Y) == 0 {
		return dataset.Empty(len(mds.md.Features)), nil
	}
	return dataset.New(X, Y)
}

/*
Write takes an in-memory dataset and inserts its examples on the collection,
returning the number of examples written or an error.
*/
func (mds *Dataset) Write(ctx context.Context, d *dataset.Dataset) (int, error) {
	if d.Len() == 0 {
		return 0, nil
	}
	if d.Dims() != len(mds.md.Features) {
		return 0, fmt.Errorf("writing samples with %d features to dataset with %d features", d.Dims(), len(mds.md.Features))
	}
	docs := make([]interface{}, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		doc := make(bson.M)
		for j, f := range mds.md.Features {
			doc[f.Name()] = d.Row(i)[j]
		}
		doc[mds.md.Label.Name()] = d.Label(i)
		docs = append(docs, doc)
	}
	err := mds.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("writing samples: %v", err)
	}
	return len(docs), nil
}

func (mds *Dataset) ensureIndexes() error {
	for _, fName := range append(mds.md.FeatureNames(), mds.md.Label.Name()) {
		if fName == "_id" {
			return fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(fName, ".$") {
			return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{fName},
			Background: true,
			Sparse:     true,
		}
		err := mds.samplesCollection().EnsureIndex(index)
		if err != nil {
			return err
		}
	}
	return nil
}

func (mds *Dataset) samplesCollection() *mgo.Collection {
	return mds.session.DB("").C(samplesCollectionName)
}

func (mds *Dataset) query() *mgo.Query {
	return mds.samplesCollection().Find(mongoQuery(mds.md, mds.criteria))
}

/*
mongoQuery translates criteria to a query document, joining conditions on
the same feature with $and.
*/
func mongoQuery(md *feature.Metadata, criteria []feature.ThresholdCriterion) bson.M {
	if len(criteria) == 0 {
		return bson.M{}
	}
	conditions := make([]bson.M, 0, len(criteria))
	for _, c := range criteria {
		fName := md.Features[c.Axis()].Name()
		conditions = append(conditions, bson.M{fName: bson.M{operators[c.Operator()]: c.Threshold()}})
	}
	if len(conditions) == 1 {
		return conditions[0]
	}
	return bson.M{"$and": conditions}
}
