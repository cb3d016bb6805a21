package loader

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"tabload/dataset"
)

// SQLiteReader loads a result set from a SQLite database file. The
// query option wins, then the table option; with neither, the single
// user table is selected by introspecting sqlite_master, and anything
// other than exactly one table is an *AmbiguousSchemaError. The
// connection never outlives the call.
type SQLiteReader struct{}

func (r *SQLiteReader) Read(path string, opts Options) (*dataset.Dataset, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	query, ok := opts.stringValue("query")
	if !ok {
		table, ok := opts.stringValue("table")
		if !ok {
			table, err = singleUserTable(db, path)
			if err != nil {
				return nil, err
			}
		}
		query = "SELECT * FROM " + quoteIdentifier(table)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query sqlite db: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read result columns: %w", err)
	}

	ds := dataset.New(columns...)
	scan := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range scan {
		pointers[i] = &scan[i]
	}
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan result row: %w", err)
		}
		cells := make([]any, len(scan))
		for i, value := range scan {
			if raw, ok := value.([]byte); ok {
				cells[i] = string(raw)
			} else {
				cells[i] = value
			}
		}
		ds.AppendRow(cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate result rows: %w", err)
	}

	return ds, nil
}

// singleUserTable returns the only non-internal table in the database.
func singleUserTable(db *sql.DB, path string) (string, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name;`)
	if err != nil {
		return "", fmt.Errorf("introspect sqlite schema: %w", err)
	}
	defer rows.Close()

	tables := make([]string, 0, 4)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate table names: %w", err)
	}

	if len(tables) != 1 {
		return "", &AmbiguousSchemaError{Path: path, Tables: tables}
	}
	return tables[0], nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
