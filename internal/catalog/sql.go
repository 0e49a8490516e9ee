package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
	_ "modernc.org/sqlite"
)

const defaultTable = "movies"

// readSQLite reads every column of a table from a SQLite database file.
func readSQLite(ctx context.Context, path, tableName string) (table, error) {
	if err := mustExist(path); err != nil {
		return table{}, err
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path))
	if err != nil {
		return table{}, &DatasetNotFoundError{Path: path, Err: err}
	}
	defer db.Close()

	return queryTable(ctx, db, path, "SELECT * FROM "+quoteIdent(tableOrDefault(tableName)))
}

// readDuckDB reads a table from a DuckDB database file, or a Parquet or JSON
// file through an in-memory DuckDB connection.
func readDuckDB(ctx context.Context, path, tableName, format string) (table, error) {
	if err := mustExist(path); err != nil {
		return table{}, err
	}

	dsn, query := path+"?access_mode=READ_ONLY", "SELECT * FROM "+quoteIdent(tableOrDefault(tableName))
	switch format {
	case "parquet":
		dsn, query = "", "SELECT * FROM read_parquet("+quoteLiteral(path)+")"
	case "json":
		dsn, query = "", "SELECT * FROM read_json_auto("+quoteLiteral(path)+")"
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return table{}, &DatasetNotFoundError{Path: path, Err: err}
	}
	defer db.Close()

	return queryTable(ctx, db, path, query)
}

func queryTable(ctx context.Context, db *sql.DB, path, query string) (table, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return table{}, fmt.Errorf("catalog: failed to query %q: %w", path, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return table{}, fmt.Errorf("catalog: failed to read columns of %q: %w", path, err)
	}

	tbl := table{columns: columns}
	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return table{}, fmt.Errorf("catalog: failed to scan row of %q: %w", path, err)
		}
		row := make([]cell, len(columns))
		for i, v := range values {
			row[i] = cell{value: v.String, valid: v.Valid}
		}
		tbl.rows = append(tbl.rows, row)
	}
	if err := rows.Err(); err != nil {
		return table{}, fmt.Errorf("catalog: failed to iterate %q: %w", path, err)
	}
	return tbl, nil
}

// mustExist stops database drivers from creating an empty file at path.
func mustExist(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &DatasetNotFoundError{Path: path, Err: err}
	}
	if info.IsDir() {
		return &DatasetNotFoundError{Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}
	return nil
}

func tableOrDefault(name string) string {
	if strings.TrimSpace(name) == "" {
		return defaultTable
	}
	return name
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
