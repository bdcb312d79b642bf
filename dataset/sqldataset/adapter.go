package sqldataset

import "context"

/*
Adapter is an interface providing the methods needed to store examples on and
load them from a database.

ColumnName takes a feature name and returns the column name to use for it or
an error if the name cannot be used as column name.

CreateSampleTable takes the feature column names and the label column name
and ensures the samples table exists.

AddSamples takes the columns to fill in and the rows of values, in the order of
the columns, and inserts them on the samples table, returning the number of
rows inserted.

IterateOnSamples takes criteria, the feature columns and the label column and
calls the given lambda with the index and the values of every row satisfying
the criteria, in id order. Feature values are passed as float64 and the label
as int64, NULL values as nil. The iteration stops when the lambda returns false
or an error.

CountSamples takes criteria and returns the number of rows satisfying them.
*/
type Adapter interface {
	ColumnName(string) (string, error)
	CreateSampleTable(ctx context.Context, featureColumns []string, labelColumn string) error
	AddSamples(ctx context.Context, columns []string, rows [][]interface{}) (int, error)
	IterateOnSamples(ctx context.Context, criteria []*Criterion, featureColumns []string, labelColumn string, lambda func(int, []interface{}) (bool, error)) error
	CountSamples(ctx context.Context, criteria []*Criterion) (int, error)
	Close() error
}
