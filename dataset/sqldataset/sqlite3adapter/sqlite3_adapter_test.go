package sqlite3adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/sqldataset"
	"github.com/pbanos/sapling/feature"
)

func TestWriteAndLoad(t *testing.T) {
	ctx := context.Background()
	a, err := New(filepath.Join(t.TempDir(), "samples.db"), 1)
	if err != nil {
		t.Fatal(err)
	}
	md := feature.DefaultMetadata(2)
	ds, err := sqldataset.Create(ctx, a, md)
	if err != nil {
		t.Fatal(err)
	}
	defer ds.Close()
	var X [][]float64
	var Y []int
	for i := 0; i < 25; i++ {
		X = append(X, []float64{float64(i) / 4, float64(25 - i)})
		if i%3 == 0 {
			Y = append(Y, -1)
		} else {
			Y = append(Y, 1)
		}
	}
	d, err := dataset.New(X, Y)
	if err != nil {
		t.Fatal(err)
	}
	n, err := ds.Write(ctx, d)
	if err != nil {
		t.Fatal(err)
	}
	if n != 25 {
		t.Errorf("expected 25 samples written, got %d", n)
	}
	count, err := ds.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 25 {
		t.Errorf("expected count 25, got %d", count)
	}
	loaded, err := ds.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 25 || loaded.Dims() != 2 {
		t.Fatalf("expected 25x2 dataset, got %v", loaded)
	}
	for i := 0; i < 25; i++ {
		if loaded.Label(i) != Y[i] || loaded.Row(i)[0] != X[i][0] || loaded.Row(i)[1] != X[i][1] {
			t.Errorf("sample %d: expected %v %d, got %v %d", i, X[i], Y[i], loaded.Row(i), loaded.Label(i))
		}
	}

	below, err := ds.SubsetWith(feature.Below(0, 2.6))
	if err != nil {
		t.Fatal(err)
	}
	count, err = below.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 11 {
		t.Errorf("expected 11 samples below 2.6, got %d", count)
	}
	above, err := below.SubsetWith(feature.Above(1, 20))
	if err != nil {
		t.Fatal(err)
	}
	subset, err := above.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if subset.Len() != 5 {
		t.Errorf("expected 5 samples, got %d", subset.Len())
	}
}

func TestColumnName(t *testing.T) {
	a := &adapter{}
	if _, err := a.ColumnName("id"); err == nil {
		t.Error("expected error for reserved column name id")
	}
	if _, err := a.ColumnName(`x"0`); err == nil {
		t.Error("expected error for column name with quotes")
	}
	if c, err := a.ColumnName("x0"); err != nil || c != "x0" {
		t.Errorf("expected x0, got %q %v", c, err)
	}
}
