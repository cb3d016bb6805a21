package loader

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func createDatabase(t *testing.T, dir, name string, statements ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			t.Fatalf("exec %q: %v", statement, err)
		}
	}
	return path
}

func TestSQLiteReaderSingleTable(t *testing.T) {
	t.Parallel()

	path := createDatabase(t, t.TempDir(), "data.sqlite",
		`CREATE TABLE table_name (id INTEGER, amount INTEGER);`,
		`INSERT INTO table_name VALUES (1, 10), (2, 20);`,
	)

	ds, err := Load(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.NumRows() != 2 || ds.NumCols() != 2 {
		t.Fatalf("unexpected dimensions: %dx%d", ds.NumRows(), ds.NumCols())
	}
	if ds.Columns[0] != "id" || ds.Columns[1] != "amount" {
		t.Fatalf("unexpected columns: %v", ds.Columns)
	}
	if ds.Rows[1][1] != int64(20) {
		t.Fatalf("unexpected cell: %T %v", ds.Rows[1][1], ds.Rows[1][1])
	}
}

func TestSQLiteReaderDBExtension(t *testing.T) {
	t.Parallel()

	path := createDatabase(t, t.TempDir(), "data.db",
		`CREATE TABLE sales (id INTEGER);`,
		`INSERT INTO sales VALUES (1);`,
	)
	ds, err := Load(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.NumRows() != 1 {
		t.Fatalf("unexpected row count: %d", ds.NumRows())
	}
}

func TestSQLiteReaderTableOption(t *testing.T) {
	t.Parallel()

	path := createDatabase(t, t.TempDir(), "two.sqlite",
		`CREATE TABLE first (a INTEGER);`,
		`CREATE TABLE second (b TEXT);`,
		`INSERT INTO second VALUES ('x');`,
	)

	ds, err := Load(path, Options{"table": "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Columns[0] != "b" || ds.Rows[0][0] != "x" {
		t.Fatalf("table option ignored: %v %v", ds.Columns, ds.Rows)
	}
}

func TestSQLiteReaderQueryOption(t *testing.T) {
	t.Parallel()

	path := createDatabase(t, t.TempDir(), "q.sqlite",
		`CREATE TABLE sales (id INTEGER, amount INTEGER);`,
		`INSERT INTO sales VALUES (1, 10), (2, 20);`,
	)

	ds, err := Load(path, Options{"query": "SELECT amount FROM sales WHERE id = 2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.NumRows() != 1 || ds.Rows[0][0] != int64(20) {
		t.Fatalf("query option ignored: %v", ds.Rows)
	}
}

func TestSQLiteReaderAmbiguousSchema(t *testing.T) {
	t.Parallel()

	path := createDatabase(t, t.TempDir(), "two.sqlite",
		`CREATE TABLE first (a INTEGER);`,
		`CREATE TABLE second (b INTEGER);`,
	)

	_, err := Load(path, nil)
	var ambiguous *AmbiguousSchemaError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousSchemaError, got %v", err)
	}
	if len(ambiguous.Tables) != 2 {
		t.Fatalf("unexpected tables: %v", ambiguous.Tables)
	}
	if !strings.Contains(err.Error(), "first") || !strings.Contains(err.Error(), "second") {
		t.Fatalf("candidates not named: %v", err)
	}
}

func TestSQLiteReaderEmptySchema(t *testing.T) {
	t.Parallel()

	path := createDatabase(t, t.TempDir(), "empty.sqlite",
		`CREATE TABLE t (a INTEGER);`,
		`DROP TABLE t;`,
	)

	_, err := Load(path, nil)
	var ambiguous *AmbiguousSchemaError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousSchemaError, got %v", err)
	}
	if len(ambiguous.Tables) != 0 {
		t.Fatalf("unexpected tables: %v", ambiguous.Tables)
	}
}

func TestSQLiteReaderMissingTable(t *testing.T) {
	t.Parallel()

	path := createDatabase(t, t.TempDir(), "data.sqlite",
		`CREATE TABLE sales (id INTEGER);`,
	)

	_, err := Load(path, Options{"table": "table_name"})
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if !strings.Contains(err.Error(), "table_name") {
		t.Fatalf("missing-table cause not identified: %v", err)
	}
}

func TestSQLiteReaderNullCells(t *testing.T) {
	t.Parallel()

	path := createDatabase(t, t.TempDir(), "nulls.sqlite",
		`CREATE TABLE sales (id INTEGER, note TEXT);`,
		`INSERT INTO sales VALUES (1, NULL);`,
	)

	ds, err := Load(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.Rows[0][1] != nil {
		t.Fatalf("NULL cell: got %v", ds.Rows[0][1])
	}
}
