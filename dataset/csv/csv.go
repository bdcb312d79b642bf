/*
Package csv reads and writes datasets as CSV documents whose header names the
columns, selected and ordered by feature metadata.
*/
package csv

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

/*
Read takes an io.Reader for a CSV stream and the metadata of the examples and
returns the dataset parsed from it or an error.

The header or first row of the CSV content must include the names of the
features and the label in the metadata, in any order. Other columns are
ignored. Every row must have a real value for each feature and an integer
value for the label.
*/
func Read(r io.Reader, md *feature.Metadata) (*dataset.Dataset, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	types := map[string]series.Type{md.Label.Name(): series.Float}
	for _, name := range md.FeatureNames() {
		types[name] = series.Float
	}
	df := dataframe.ReadCSV(r, dataframe.WithTypes(types))
	if df.Err != nil {
		return nil, fmt.Errorf("reading CSV: %v", df.Err)
	}
	n := df.Nrow()
	columns := make([][]float64, len(md.Features))
	for i, f := range md.Features {
		col := df.Col(f.Name())
		if col.Err != nil {
			return nil, fmt.Errorf("reading column %s: %v", f.Name(), col.Err)
		}
		columns[i] = col.Float()
	}
	labelCol := df.Col(md.Label.Name())
	if labelCol.Err != nil {
		return nil, fmt.Errorf("reading column %s: %v", md.Label.Name(), labelCol.Err)
	}
	labels := labelCol.Float()
	if n == 0 {
		return dataset.Empty(len(md.Features)), nil
	}
	X := make([][]float64, n)
	Y := make([]int, n)
	for i := 0; i < n; i++ {
		X[i] = make([]float64, len(md.Features))
		for j, f := range md.Features {
			v, err := f.Value(columns[j][i])
			if err != nil {
				return nil, fmt.Errorf("parsing line %d: %v", i+2, err)
			}
			X[i][j] = v
		}
		y, err := md.Label.Value(labels[i])
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %v", i+2, err)
		}
		Y[i] = y
	}
	return dataset.New(X, Y)
}

/*
ReadFile takes a filepath string and the metadata of the examples, opens the
file to which the filepath points to and uses Read to return the dataset in
it. If the filepath is "" os.Stdin is read instead.
*/
func ReadFile(filepath string, md *feature.Metadata) (*dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	d, err := Read(f, md)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return d, err
}

/*
Write takes an io.Writer, a dataset and the metadata of its examples and
writes the dataset as CSV, with a header with the feature names followed by
the label name. Values are written with the precision needed to read them back
unchanged.
*/
func Write(w io.Writer, d *dataset.Dataset, md *feature.Metadata) error {
	if d.Dims() != len(md.Features) {
		return fmt.Errorf("writing dataset with %d features with metadata for %d features", d.Dims(), len(md.Features))
	}
	cols := make([]series.Series, 0, len(md.Features)+1)
	for j, f := range md.Features {
		values := make([]string, d.Len())
		for i := range values {
			values[i] = strconv.FormatFloat(d.Row(i)[j], 'g', -1, 64)
		}
		cols = append(cols, series.New(values, series.String, f.Name()))
	}
	cols = append(cols, series.New(d.Labels(), series.Int, md.Label.Name()))
	df := dataframe.New(cols...)
	if df.Err != nil {
		return fmt.Errorf("building CSV: %v", df.Err)
	}
	err := df.WriteCSV(w)
	if err != nil {
		return fmt.Errorf("writing CSV: %v", err)
	}
	return nil
}
