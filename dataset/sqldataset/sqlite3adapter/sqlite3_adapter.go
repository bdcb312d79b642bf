/*
Package sqlite3adapter provides an implementation of the Adapter interface in
the sqldataset package that works over an SQLite3 database file.
*/
package sqlite3adapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbanos/sapling/dataset/sqldataset"
)

const (
	/*
		MaxSampleInsertionsPerStatement is the maximum number
		of samples that are allowed to be added with a single
		insert command with the AddSamples method of the adapter.
		Trying to add more will result in making more insertion commands
	*/
	MaxSampleInsertionsPerStatement = 10
)

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and a maximum number of open
connections and returns an Adapter that works on the file's database or an
error if it fails to open as an sqlite3 database. A maxConns of 0 or less
means no limit.
*/
func New(path string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) ColumnName(featureName string) (string, error) {
	if featureName == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as feature name`, featureName)
	}
	if strings.ContainsAny(featureName, `"`) {
		return "", fmt.Errorf(`feature name '%s' contains invalid character '"'`, featureName)
	}
	return featureName, nil
}

func (a *adapter) CreateSampleTable(ctx context.Context, featureColumns []string, labelColumn string) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	for _, c := range featureColumns {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" REAL NULL, `, c))
	}
	createStmtBuf.WriteString(fmt.Sprintf(`"%s" INTEGER NULL, `, labelColumn))
	createStmtBuf.WriteString(`"id" INTEGER PRIMARY KEY AUTOINCREMENT)`)
	createStmt, err := a.db.PrepareContext(ctx, createStmtBuf.String())
	if err != nil {
		return fmt.Errorf("preparing samples creation statement: %v", err)
	}
	defer createStmt.Close()
	_, err = createStmt.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("ensuring samples table exists: %v", err)
	}
	return nil
}

func (a *adapter) AddSamples(ctx context.Context, columns []string, rows [][]interface{}) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("no features to store")
	}
	var added int
	for added < len(rows) {
		end := added + MaxSampleInsertionsPerStatement
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[added:end]
		values := make([]interface{}, 0, len(chunk)*len(columns))
		for i, row := range chunk {
			if len(row) != len(columns) {
				return added, fmt.Errorf("sample %d has %d values for %d columns", added+i, len(row), len(columns))
			}
			values = append(values, row...)
		}
		_, err := a.db.ExecContext(ctx, insertStatement(columns, len(chunk)), values...)
		if err != nil {
			return added, fmt.Errorf("inserting samples %d to %d: %v", added, end-1, err)
		}
		added = end
	}
	return added, nil
}

func (a *adapter) IterateOnSamples(ctx context.Context, criteria []*sqldataset.Criterion, featureColumns []string, labelColumn string, lambda func(int, []interface{}) (bool, error)) error {
	var queryBuffer bytes.Buffer
	queryBuffer.WriteString(`SELECT "`)
	queryBuffer.WriteString(strings.Join(append(append([]string(nil), featureColumns...), labelColumn), `", "`))
	queryBuffer.WriteString(`" FROM samples`)
	whereClause, whereValues := sqldataset.WhereClause(criteria, placeholder)
	queryBuffer.WriteString(whereClause)
	queryBuffer.WriteString(` ORDER BY "id"`)
	rows, err := a.db.QueryContext(ctx, queryBuffer.String(), whereValues...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		featureValues := make([]sql.NullFloat64, len(featureColumns))
		var labelValue sql.NullInt64
		dest := make([]interface{}, 0, len(featureColumns)+1)
		for i := range featureValues {
			dest = append(dest, &featureValues[i])
		}
		dest = append(dest, &labelValue)
		err = rows.Scan(dest...)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(featureColumns)+1)
		for i, v := range featureValues {
			if v.Valid {
				values[i] = v.Float64
			}
		}
		if labelValue.Valid {
			values[len(featureColumns)] = labelValue.Int64
		}
		ok, err := lambda(j, values)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountSamples(ctx context.Context, criteria []*sqldataset.Criterion) (int, error) {
	whereClause, whereValues := sqldataset.WhereClause(criteria, placeholder)
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM samples`+whereClause, whereValues...).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}

func placeholder(int) string {
	return "?"
}

func insertStatement(columns []string, rows int) string {
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO samples ("`)
	buf.WriteString(strings.Join(columns, `", "`))
	buf.WriteString(`") VALUES `)
	tuple := "(?" + strings.Repeat(", ?", len(columns)-1) + ")"
	for i := 0; i < rows; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(tuple)
	}
	return buf.String()
}
