/*
Package text reads and writes datasets as whitespace separated text: one
example per line, its feature values followed by its integer label.

	0.757222 0.633831 -1
	0.847382 0.281581 -1
	0.24931 0.618635 +1
*/
package text

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
)

/*
Read takes an io.Reader and returns the dataset parsed from it or an error.
Blank lines are ignored. Every other line must have the same number of
columns, at least 2. Labels written as reals with no fractional part (-1.0)
are accepted.
*/
func Read(r io.Reader) (*dataset.Dataset, error) {
	var X [][]float64
	var Y []int
	label := feature.NewLabelFeature("label")
	columns := -1
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for l := 1; scanner.Scan(); l++ {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if columns < 0 {
			columns = len(fields)
			if columns < 2 {
				return nil, fmt.Errorf("line %d: expected at least 2 columns, got %d", l, columns)
			}
		}
		if len(fields) != columns {
			return nil, fmt.Errorf("line %d: expected %d columns, got %d", l, columns, len(fields))
		}
		x := make([]float64, columns-1)
		for i, field := range fields[:columns-1] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing feature %d: %v", l, i, err)
			}
			x[i] = v
		}
		y, err := parseLabel(label, fields[columns-1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", l, err)
		}
		X = append(X, x)
		Y = append(Y, y)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading examples: %v", err)
	}
	if len(Y) == 0 {
		return nil, fmt.Errorf("reading examples: %v", dataset.ErrNoExamples)
	}
	return dataset.New(X, Y)
}

/*
ReadFile takes a filepath string and uses Read to parse the dataset in the
file it points to. If the filepath is "" os.Stdin is read instead.
*/
func ReadFile(filepath string) (*dataset.Dataset, error) {
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
	d, err := Read(f)
	if err != nil {
		err = fmt.Errorf("parsing text file %s: %v", filepath, err)
	}
	return d, err
}

/*
Write takes an io.Writer and a dataset and writes the dataset's examples to
it, in the format Read parses.
*/
func Write(w io.Writer, d *dataset.Dataset) error {
	bw := bufio.NewWriter(w)
	for i := 0; i < d.Len(); i++ {
		for _, v := range d.Row(i) {
			bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			bw.WriteByte(' ')
		}
		bw.WriteString(strconv.Itoa(d.Label(i)))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func parseLabel(label *feature.LabelFeature, field string) (int, error) {
	if v, err := strconv.Atoi(field); err == nil {
		return v, nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing label %q: %v", field, err)
	}
	return label.Value(v)
}
