package loader

import (
	"reflect"
	"testing"
)

func TestJSONReaderRecords(t *testing.T) {
	t.Parallel()

	content := `[{"id": 1, "amount": 10.5, "name": "a"}, {"id": 2, "amount": 20, "name": "b"}]`
	path := writeFile(t, t.TempDir(), "sales.json", content)

	ds, err := Load(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantColumns := []string{"id", "amount", "name"}
	if !reflect.DeepEqual(ds.Columns, wantColumns) {
		t.Fatalf("columns not in first-appearance order: %v", ds.Columns)
	}
	if ds.Rows[0][0] != int64(1) {
		t.Fatalf("integral number: got %T %v", ds.Rows[0][0], ds.Rows[0][0])
	}
	if ds.Rows[0][1] != 10.5 {
		t.Fatalf("fractional number: got %T %v", ds.Rows[0][1], ds.Rows[0][1])
	}
	if ds.Rows[1][1] != int64(20) {
		t.Fatalf("integral number: got %T %v", ds.Rows[1][1], ds.Rows[1][1])
	}
}

func TestJSONReaderUnevenKeys(t *testing.T) {
	t.Parallel()

	content := `[{"id": 1}, {"id": 2, "extra": true}]`
	path := writeFile(t, t.TempDir(), "uneven.json", content)

	ds, err := Load(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ds.Columns, []string{"id", "extra"}) {
		t.Fatalf("unexpected columns: %v", ds.Columns)
	}
	if ds.Rows[0][1] != nil {
		t.Fatalf("missing key should be nil, got %v", ds.Rows[0][1])
	}
	if ds.Rows[1][1] != true {
		t.Fatalf("unexpected cell: %v", ds.Rows[1][1])
	}
}

func TestJSONReaderRejectsNonArray(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "object", content: `{"id": 1}`},
		{name: "scalar", content: `42`},
		{name: "nested array element", content: `[[1, 2]]`},
		{name: "malformed", content: `[{"id": 1`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, t.TempDir(), "bad.json", tc.content)
			if _, err := Load(path, nil); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestJSONReaderEmptyArray(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "empty.json", `[]`)
	ds, err := Load(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.NumRows() != 0 || ds.NumCols() != 0 {
		t.Fatalf("unexpected dimensions: %dx%d", ds.NumRows(), ds.NumCols())
	}
}
