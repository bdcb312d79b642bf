/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/sapling/dataset/sqldataset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

const (
	// MaxSampleInsertionsPerStatement is the maximum number
	// of samples that are allowed to be added with a single
	// insert command with the AddSamples method of the adapter.
	// Trying to add more will result in making more insertion commands
	MaxSampleInsertionsPerStatement = 10
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
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

// Features are stored as DOUBLE PRECISION: PostgreSQL's REAL is single precision.
func (a *adapter) CreateSampleTable(ctx context.Context, featureColumns []string, labelColumn string) error {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString("CREATE TABLE IF NOT EXISTS samples(")
	for _, c := range featureColumns {
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" DOUBLE PRECISION NULL, `, c))
	}
	createStmtBuf.WriteString(fmt.Sprintf(`"%s" INTEGER NULL, `, labelColumn))
	createStmtBuf.WriteString(`"id" SERIAL PRIMARY KEY)`)
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
	txn, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting sample insertion transaction: %v", err)
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
				txn.Rollback()
				return 0, fmt.Errorf("sample %d has %d values for %d columns", added+i, len(row), len(columns))
			}
			values = append(values, row...)
		}
		_, err = txn.ExecContext(ctx, insertStatement(columns, len(chunk)), values...)
		if err != nil {
			txn.Rollback()
			return 0, fmt.Errorf("inserting samples %d to %d: %v", added, end-1, err)
		}
		added = end
	}
	err = txn.Commit()
	if err != nil {
		return 0, fmt.Errorf("committing sample insertion: %v", err)
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

func placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}

func insertStatement(columns []string, rows int) string {
	var buf bytes.Buffer
	buf.WriteString(`INSERT INTO samples ("`)
	buf.WriteString(strings.Join(columns, `", "`))
	buf.WriteString(`") VALUES `)
	for i := 0; i < rows; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for j := range columns {
			if j > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(placeholder(1 + j + i*len(columns)))
		}
		buf.WriteString(")")
	}
	return buf.String()
}
