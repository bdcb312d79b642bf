/*
Package sqldataset provides datasets stored on SQL databases.

Examples are stored on a single samples table with one REAL column per
continuous feature, an INTEGER column for the label and an autoincremented id
that keeps the order in which examples were written. The SQL dialect is
provided by an Adapter, see the sqlite3adapter and pgadapter packages.
*/
package sqldataset
