package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"tabload/dataset"
)

// CSVReader parses delimited text files. It serves both the comma and
// the tab routes; the registered Comma is the default separator and the
// delimiter option overrides it per call.
type CSVReader struct {
	Comma rune
}

func (r *CSVReader) Read(path string, opts Options) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open delimited file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = r.Comma
	reader.FieldsPerRecord = -1
	if delimiter, ok := opts.stringValue("delimiter"); ok {
		runes := []rune(delimiter)
		if len(runes) != 1 {
			return nil, fmt.Errorf("delimiter option must be a single character, got %q", delimiter)
		}
		reader.Comma = runes[0]
	}

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("delimited file %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read header row: %w", err)
	}

	ds := dataset.New(headers...)
	rowNumber := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rowNumber+1, err)
		}
		ds.AppendRow(parseCells(row))
		rowNumber++
	}

	return ds, nil
}
