package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/csv"
	"github.com/pbanos/sapling/dataset/mongodataset"
	"github.com/pbanos/sapling/dataset/sqldataset"
	"github.com/pbanos/sapling/dataset/sqldataset/pgadapter"
	"github.com/pbanos/sapling/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/sapling/dataset/text"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/feature/yaml"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

type datasetKind int

const (
	textDataset datasetKind = iota
	csvDataset
	sqlite3Dataset
	postgresqlDataset
	mongoDataset
)

func (k datasetKind) String() string {
	switch k {
	case csvDataset:
		return "CSV"
	case sqlite3Dataset:
		return "SQLite3"
	case postgresqlDataset:
		return "PostgreSQL"
	case mongoDataset:
		return "MongoDB"
	}
	return "text"
}

// kindOf tells the kind of dataset found at a location. "" is STDIN or
// STDOUT, read and written as text.
func kindOf(location string) datasetKind {
	switch {
	case strings.HasPrefix(location, "postgresql://"), strings.HasPrefix(location, "postgres://"):
		return postgresqlDataset
	case strings.HasPrefix(location, "mongodb://"):
		return mongoDataset
	case strings.HasSuffix(location, ".db"):
		return sqlite3Dataset
	case strings.HasSuffix(location, ".csv"):
		return csvDataset
	}
	return textDataset
}

// Text datasets carry no column names, every other kind needs metadata.
func (k datasetKind) needsMetadata() bool {
	return k != textDataset
}

func (k datasetKind) stored() bool {
	return k == sqlite3Dataset || k == postgresqlDataset || k == mongoDataset
}

// storedDataset is a dataset on a database.
type storedDataset interface {
	Count(context.Context) (int, error)
	Load(context.Context) (*dataset.Dataset, error)
	Write(context.Context, *dataset.Dataset) (int, error)
	Close() error
}

type mongoStoredDataset struct {
	*mongodataset.Dataset
	session *mgo.Session
}

func (msd *mongoStoredDataset) Close() error {
	msd.session.Close()
	return nil
}

/*
datasetConfig holds the flags shared by the commands that read a dataset: its
location, the metadata describing its columns and the limit of database
connections.
*/
type datasetConfig struct {
	*rootCmdConfig
	input         string
	metadataInput string
	maxDBConns    int
}

func (dc *datasetConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(dc.input), "input", "i", "", "path to an input CSV (.csv), SQLite3 (.db) or whitespace separated text file, or a PostgreSQL or MongoDB connection URL with the dataset (defaults to STDIN, interpreted as text)")
	cmd.PersistentFlags().StringVarP(&(dc.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features and label on the input (required unless the input is text)")
	cmd.PersistentFlags().IntVar(&(dc.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
}

func (dc *datasetConfig) Validate() error {
	if kindOf(dc.input).needsMetadata() && dc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set for %s input", kindOf(dc.input))
	}
	if dc.maxDBConns < 0 {
		return fmt.Errorf("max-db-conns must not be negative, got %d", dc.maxDBConns)
	}
	return nil
}

// metadata returns the metadata read from the metadata flag, or nil if it was
// not set.
func (dc *datasetConfig) metadata() (*feature.Metadata, error) {
	if dc.metadataInput == "" {
		return nil, nil
	}
	dc.Logf("Reading metadata from %s...", dc.metadataInput)
	md, err := yaml.ReadMetadataFromFile(dc.metadataInput)
	if err != nil {
		return nil, err
	}
	dc.Logf("Metadata with %d features read", len(md.Features))
	return md, nil
}

/*
load takes a context and the metadata from the metadata flag, possibly nil,
and returns the dataset at the input location along with the metadata that
describes it. Text datasets read without metadata are described by
feature.DefaultMetadata.
*/
func (dc *datasetConfig) load(ctx context.Context, md *feature.Metadata) (*dataset.Dataset, *feature.Metadata, error) {
	kind := kindOf(dc.input)
	var d *dataset.Dataset
	var err error
	switch kind {
	case textDataset:
		if dc.input == "" {
			dc.Logf("Reading dataset from STDIN...")
		} else {
			dc.Logf("Reading dataset from %s...", dc.input)
		}
		d, err = text.ReadFile(dc.input)
		if err != nil {
			return nil, nil, err
		}
		if md == nil {
			md = feature.DefaultMetadata(d.Dims())
		}
	case csvDataset:
		dc.Logf("Reading CSV dataset from %s...", dc.input)
		d, err = csv.ReadFile(dc.input, md)
		if err != nil {
			return nil, nil, err
		}
	default:
		var sd storedDataset
		sd, err = openStoredDataset(ctx, kind, dc.input, md, dc.maxDBConns, false)
		if err != nil {
			return nil, nil, err
		}
		defer sd.Close()
		count, err := sd.Count(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("counting samples: %v", err)
		}
		dc.Logf("Loading %d samples from %s dataset...", count, kind)
		d, err = sd.Load(ctx)
		if err != nil {
			return nil, nil, err
		}
	}
	if d.Len() > 0 && d.Dims() != len(md.Features) {
		return nil, nil, fmt.Errorf("dataset has %d features but metadata describes %d", d.Dims(), len(md.Features))
	}
	dc.Logf("Dataset with %d samples and %d features read", d.Len(), d.Dims())
	return d, md, nil
}

/*
openStoredDataset opens the database dataset of the given kind at location,
with columns described by md. With create set, the samples table of SQL
databases is created before it is used.
*/
func openStoredDataset(ctx context.Context, kind datasetKind, location string, md *feature.Metadata, maxConns int, create bool) (storedDataset, error) {
	var adapter sqldataset.Adapter
	var err error
	switch kind {
	case sqlite3Dataset:
		adapter, err = sqlite3adapter.New(location, maxConns)
	case postgresqlDataset:
		adapter, err = pgadapter.New(location)
	case mongoDataset:
		session, err := mgo.Dial(location)
		if err != nil {
			return nil, fmt.Errorf("connecting to MongoDB: %v", err)
		}
		mds, err := mongodataset.Open(ctx, session, md)
		if err != nil {
			session.Close()
			return nil, err
		}
		return &mongoStoredDataset{mds, session}, nil
	default:
		return nil, fmt.Errorf("%s datasets are not stored on a database", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %v", kind, err)
	}
	var ds *sqldataset.Dataset
	if create {
		ds, err = sqldataset.Create(ctx, adapter, md)
	} else {
		ds, err = sqldataset.Open(ctx, adapter, md)
	}
	if err != nil {
		adapter.Close()
		return nil, err
	}
	return ds, nil
}

/*
writeDataset takes a context, an output location, a dataset and the metadata
describing it and writes the dataset at the location in the format its kind
calls for. An empty location writes text to STDOUT.
*/
func writeDataset(ctx context.Context, location string, d *dataset.Dataset, md *feature.Metadata, maxConns int) (int, error) {
	kind := kindOf(location)
	if kind.stored() {
		sd, err := openStoredDataset(ctx, kind, location, md, maxConns, true)
		if err != nil {
			return 0, err
		}
		n, err := sd.Write(ctx, d)
		if err != nil {
			sd.Close()
			return n, err
		}
		return n, sd.Close()
	}
	w, err := createOutput(location)
	if err != nil {
		return 0, err
	}
	if kind == csvDataset {
		err = csv.Write(w, d, md)
	} else {
		err = text.Write(w, d)
	}
	if err != nil {
		w.Close()
		return 0, err
	}
	return d.Len(), w.Close()
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}

// createOutput returns a writer on the file at path, or on STDOUT if path is
// "".
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output: %v", err)
	}
	return f, nil
}
