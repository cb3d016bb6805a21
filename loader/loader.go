// Package loader reads dataset files into tabular form, inferring the
// parsing strategy from the file's extension. It is a pure routing
// layer: each format reader is an injectable dependency, and nothing is
// cached or shared between calls.
package loader

import (
	"fmt"
	"os"
	"path/filepath"

	"tabload/dataset"
)

// Reader parses one format family into a Dataset.
type Reader interface {
	Read(path string, opts Options) (*dataset.Dataset, error)
}

// Resolver turns a caller-supplied path into an absolute one, typically
// anchored at a project root.
type Resolver func(path string) (string, error)

// Loader dispatches dataset files to format readers by extension tag.
type Loader struct {
	resolve Resolver
	readers map[Format]Reader
}

// New returns a Loader with the default readers and a resolver that
// anchors relative paths at the process working directory. Use
// SetResolver to anchor at a project root instead.
func New() *Loader {
	return &Loader{
		resolve: func(path string) (string, error) {
			return filepath.Abs(path)
		},
		readers: defaultReaders(),
	}
}

func defaultReaders() map[Format]Reader {
	return map[Format]Reader{
		FormatExcel:  &ExcelReader{},
		FormatCSV:    &CSVReader{Comma: ','},
		FormatStata:  &StataReader{},
		FormatRData:  &RDataReader{},
		FormatJSON:   &JSONReader{},
		FormatText:   &CSVReader{Comma: '\t'},
		FormatSQLite: &SQLiteReader{},
	}
}

// SetResolver replaces the path resolver.
func (l *Loader) SetResolver(resolve Resolver) {
	l.resolve = resolve
}

// Register replaces the reader for a format. Intended for callers that
// need custom parsing behavior and for fakes in tests.
func (l *Loader) Register(format Format, reader Reader) {
	l.readers[format] = reader
}

// Load resolves path, routes it by extension tag, and returns the
// selected reader's result unchanged. Failure modes, in order: a
// resolution error, an error wrapping fs.ErrNotExist when no file
// exists at the resolved path, *UnsupportedFormatError for unknown
// extensions, and *LoadError wrapping any reader failure.
func (l *Loader) Load(path string, opts Options) (*dataset.Dataset, error) {
	resolved, err := l.resolve(path)
	if err != nil {
		return nil, fmt.Errorf("resolve dataset path %s: %w", path, err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("dataset file %s: %w", resolved, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("dataset path %s is a directory", resolved)
	}

	format, err := DetectFormat(resolved)
	if err != nil {
		return nil, err
	}
	reader, ok := l.readers[format]
	if !ok {
		return nil, fmt.Errorf("no reader registered for format %s", format)
	}

	ds, err := reader.Read(resolved, opts)
	if err != nil {
		return nil, &LoadError{Path: resolved, Err: err}
	}
	return ds, nil
}

// Load reads a dataset file with a default Loader.
func Load(path string, opts Options) (*dataset.Dataset, error) {
	return New().Load(path, opts)
}
