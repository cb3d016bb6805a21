package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"tabload/dataset"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, ds *dataset.Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(ds.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(ds.Columns))
	for _, row := range ds.Rows {
		for i := range record {
			if i < len(row) {
				record[i] = FormatCell(row[i])
			} else {
				record[i] = ""
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
