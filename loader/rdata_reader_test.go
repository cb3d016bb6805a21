package loader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// rdataFixture assembles a minimal uncompressed RDX2 stream holding the
// binding dta = data.frame(id = 1:2, amount = c(10L, 20L)) plus a second
// vector binding named other.
func rdataFixture(t *testing.T, dir string) string {
	t.Helper()

	var buf bytes.Buffer
	writeInt := func(v int32) {
		if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
			t.Fatalf("write fixture int: %v", err)
		}
	}
	writeChar := func(s string) {
		writeInt(9) // CHARSXP
		writeInt(int32(len(s)))
		buf.WriteString(s)
	}
	writeSymbol := func(s string) {
		writeInt(1) // SYMSXP
		writeChar(s)
	}
	writeStrings := func(values ...string) {
		writeInt(16) // STRSXP
		writeInt(int32(len(values)))
		for _, v := range values {
			writeChar(v)
		}
	}
	writeInts := func(flags int32, values ...int32) {
		writeInt(13 | flags) // INTSXP
		writeInt(int32(len(values)))
		for _, v := range values {
			writeInt(v)
		}
	}
	taggedNode := func(name string) {
		writeInt(2 | 1<<10) // LISTSXP with tag
		writeSymbol(name)
	}

	buf.WriteString("RDX2\nX\n")
	writeInt(2)
	writeInt(197636)
	writeInt(131840)

	taggedNode("dta")
	writeInt(19 | 1<<8 | 1<<9) // VECSXP, object, attributes
	writeInt(2)
	writeInts(0, 1, 2)
	writeInts(0, 10, 20)
	taggedNode("names")
	writeStrings("id", "amount")
	taggedNode("row.names")
	writeInts(0, -2147483648, -2)
	taggedNode("class")
	writeStrings("data.frame")
	writeInt(254) // end of attributes

	taggedNode("other")
	writeInts(0, 7)
	writeInt(254) // end of bindings

	path := filepath.Join(dir, "data.RData")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRDataReaderDefaultBinding(t *testing.T) {
	t.Parallel()

	path := rdataFixture(t, t.TempDir())
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
		t.Fatalf("unexpected cell: %v", ds.Rows[1][1])
	}
}

func TestRDataReaderBindingOption(t *testing.T) {
	t.Parallel()

	path := rdataFixture(t, t.TempDir())
	ds, err := Load(path, Options{"binding": "other"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.NumCols() != 1 || ds.Columns[0] != "other" {
		t.Fatalf("unexpected columns: %v", ds.Columns)
	}
	if ds.Rows[0][0] != int64(7) {
		t.Fatalf("unexpected cell: %v", ds.Rows[0][0])
	}
}

func TestRDataReaderMissingBinding(t *testing.T) {
	t.Parallel()

	path := rdataFixture(t, t.TempDir())
	_, err := Load(path, Options{"binding": "nope"})
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	// The failure lists what the file actually contains.
	if !strings.Contains(err.Error(), "dta") || !strings.Contains(err.Error(), "other") {
		t.Fatalf("available bindings not listed: %v", err)
	}
}

func TestRDataReaderMalformedFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bad.RData", "not an rdata stream")
	var loadErr *LoadError
	if _, err := Load(path, nil); !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}
