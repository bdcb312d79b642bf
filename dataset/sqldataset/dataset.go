package sqldataset

import (
	"context"
	"fmt"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

/*
Dataset is a set of examples stored on a database through an Adapter,
optionally restricted to those satisfying some criteria.
*/
type Dataset struct {
	db             Adapter
	md             *feature.Metadata
	criteria       []*Criterion
	featureColumns []string
	labelColumn    string
	count          *int
}

/*
Open takes an Adapter to a db backend and the metadata of the examples and
returns a Dataset backed by the given adapter or an error if the feature names
cannot be translated to columns.

This function expects the adapter to have the samples table already created.
*/
func Open(ctx context.Context, dbAdapter Adapter, md *feature.Metadata) (*Dataset, error) {
	ds := &Dataset{db: dbAdapter, md: md}
	err := ds.initColumns()
	if err != nil {
		return nil, err
	}
	return ds, nil
}

/*
Create takes an Adapter and the metadata of the examples and returns a Dataset
backed by the given adapter or an error.

This function will ensure that the samples table is created on the database.
*/
func Create(ctx context.Context, dbAdapter Adapter, md *feature.Metadata) (*Dataset, error) {
	ds, err := Open(ctx, dbAdapter, md)
	if err != nil {
		return nil, err
	}
	err = ds.db.CreateSampleTable(ctx, ds.featureColumns, ds.labelColumn)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// Metadata returns the metadata of the dataset's examples.
func (ds *Dataset) Metadata() *feature.Metadata {
	return ds.md
}

/*
Count returns the number of examples in the dataset. The count is cached
after the first successful call.
*/
func (ds *Dataset) Count(ctx context.Context) (int, error) {
	if ds.count != nil {
		return *ds.count, nil
	}
	result, err := ds.db.CountSamples(ctx, ds.criteria)
	if err != nil {
		return 0, fmt.Errorf("counting samples: %v", err)
	}
	ds.count = &result
	return result, nil
}

/*
SubsetWith takes a feature.ThresholdCriterion and returns the subset of the
dataset's examples that also satisfy it. No query is performed until the
subset is loaded or counted.
*/
func (ds *Dataset) SubsetWith(c feature.ThresholdCriterion) (*Dataset, error) {
	if c.Axis() < 0 || c.Axis() >= len(ds.featureColumns) {
		return nil, fmt.Errorf("criterion on axis %d for dataset with %d features", c.Axis(), len(ds.featureColumns))
	}
	criteria := make([]*Criterion, len(ds.criteria), len(ds.criteria)+1)
	copy(criteria, ds.criteria)
	criteria = append(criteria, &Criterion{
		Column:   ds.featureColumns[c.Axis()],
		Operator: c.Operator(),
		Value:    c.Threshold(),
	})
	return &Dataset{
		db:             ds.db,
		md:             ds.md,
		criteria:       criteria,
		featureColumns: ds.featureColumns,
		labelColumn:    ds.labelColumn,
	}, nil
}

/*
Load reads every example in the dataset, in the order they were written, and
returns them as an in-memory dataset. Examples with a NULL value on any column
produce an error.
*/
func (ds *Dataset) Load(ctx context.Context) (*dataset.Dataset, error) {
	var X [][]float64
	var Y []int
	err := ds.db.IterateOnSamples(ctx, ds.criteria, ds.featureColumns, ds.labelColumn, func(i int, values []interface{}) (bool, error) {
		x := make([]float64, len(ds.md.Features))
		for j, f := range ds.md.Features {
			v, err := f.Value(values[j])
			if err != nil {
				return false, fmt.Errorf("sample %d: %v", i, err)
			}
			x[j] = v
		}
		y, err := ds.md.Label.Value(values[len(values)-1])
		if err != nil {
			return false, fmt.Errorf("sample %d: %v", i, err)
		}
		X = append(X, x)
		Y = append(Y, y)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading samples: %v", err)
	}
	if len(Y) == 0 {
		return dataset.Empty(len(ds.md.Features)), nil
	}
	return dataset.New(X, Y)
}

/*
Write takes an in-memory dataset and adds its examples to the database,
returning the number of examples written or an error.
*/
func (ds *Dataset) Write(ctx context.Context, d *dataset.Dataset) (int, error) {
	if d.Len() > 0 && d.Dims() != len(ds.featureColumns) {
		return 0, fmt.Errorf("writing samples with %d features to dataset with %d features", d.Dims(), len(ds.featureColumns))
	}
	columns := append(append([]string(nil), ds.featureColumns...), ds.labelColumn)
	rows := make([][]interface{}, d.Len())
	for i := range rows {
		row := make([]interface{}, 0, len(columns))
		for _, v := range d.Row(i) {
			row = append(row, v)
		}
		rows[i] = append(row, int64(d.Label(i)))
	}
	n, err := ds.db.AddSamples(ctx, columns, rows)
	ds.count = nil
	if err != nil {
		return n, fmt.Errorf("writing samples: %v", err)
	}
	return n, nil
}

// Close releases the adapter's database connections.
func (ds *Dataset) Close() error {
	return ds.db.Close()
}

func (ds *Dataset) initColumns() error {
	if err := ds.md.Validate(); err != nil {
		return err
	}
	columnFeatures := make(map[string]string)
	for _, name := range append(ds.md.FeatureNames(), ds.md.Label.Name()) {
		column, err := ds.db.ColumnName(name)
		if err != nil {
			return fmt.Errorf("invalid feature %s: %v", name, err)
		}
		of, ok := columnFeatures[column]
		if ok {
			return fmt.Errorf("%s and %s feature names translate to the same column name %s", name, of, column)
		}
		columnFeatures[column] = name
		ds.featureColumns = append(ds.featureColumns, column)
	}
	ds.labelColumn = ds.featureColumns[len(ds.featureColumns)-1]
	ds.featureColumns = ds.featureColumns[:len(ds.featureColumns)-1]
	return nil
}
