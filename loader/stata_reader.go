package loader

import (
	"fmt"
	"os"

	"github.com/kshedden/datareader"

	"tabload/dataset"
)

// StataReader parses Stata .dta files through kshedden/datareader. The
// rows option caps how many rows are read; the default reads the whole
// file.
type StataReader struct{}

func (r *StataReader) Read(path string, opts Options) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stata file %s: %w", path, err)
	}
	defer file.Close()

	stata, err := datareader.NewStataReader(file)
	if err != nil {
		return nil, fmt.Errorf("parse stata file %s: %w", path, err)
	}

	limit := -1
	if rows, ok := opts.intValue("rows"); ok {
		limit = rows
	}
	series, err := stata.Read(limit)
	if err != nil {
		return nil, fmt.Errorf("read stata rows: %w", err)
	}

	columns := stata.ColumnNames()
	if len(columns) != len(series) {
		return nil, fmt.Errorf("stata column names and data disagree: %d names, %d columns", len(columns), len(series))
	}

	data := make([][]any, len(series))
	rowCount := 0
	for i, column := range series {
		cells, err := seriesCells(column)
		if err != nil {
			return nil, fmt.Errorf("read stata column %s: %w", columns[i], err)
		}
		data[i] = cells
		if len(cells) > rowCount {
			rowCount = len(cells)
		}
	}

	ds := dataset.New(columns...)
	for row := 0; row < rowCount; row++ {
		cells := make([]any, len(data))
		for col := range data {
			if row < len(data[col]) {
				cells[col] = data[col][row]
			}
		}
		ds.AppendRow(cells)
	}
	return ds, nil
}

// seriesCells flattens a datareader column into cells, applying the
// missing-value mask as nil.
func seriesCells(column *datareader.Series) ([]any, error) {
	if values, missing, err := column.AsFloat64Slice(); err == nil {
		cells := make([]any, len(values))
		for i, value := range values {
			if missing != nil && missing[i] {
				continue
			}
			cells[i] = value
		}
		return cells, nil
	}

	values, missing, err := column.AsStringSlice()
	if err != nil {
		return nil, err
	}
	cells := make([]any, len(values))
	for i, value := range values {
		if missing != nil && missing[i] {
			continue
		}
		cells[i] = value
	}
	return cells, nil
}
