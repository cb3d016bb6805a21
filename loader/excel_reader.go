package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"tabload/dataset"
)

// ExcelReader parses spreadsheet workbooks. The sheet option selects a
// sheet by name or zero-based index; the first sheet is the default.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string, opts Options) (*dataset.Dataset, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", path, err)
	}
	defer file.Close()

	sheetName, err := selectSheet(file, opts)
	if err != nil {
		return nil, err
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheetName)
	}

	ds := dataset.New(rows[0]...)
	for _, row := range rows[1:] {
		ds.AppendRow(parseCells(row))
	}

	return ds, nil
}

func selectSheet(file *excelize.File, opts Options) (string, error) {
	if name, ok := opts.stringValue("sheet"); ok {
		index, err := file.GetSheetIndex(name)
		if err != nil {
			return "", fmt.Errorf("look up sheet %q: %w", name, err)
		}
		if index < 0 {
			return "", fmt.Errorf("workbook has no sheet named %q", name)
		}
		return name, nil
	}

	index := 0
	if i, ok := opts.intValue("sheet"); ok {
		index = i
	}
	name := file.GetSheetName(index)
	if name == "" {
		return "", fmt.Errorf("workbook has no sheet at index %d", index)
	}
	return name, nil
}
