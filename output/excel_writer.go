package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"tabload/dataset"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, ds *dataset.Dataset) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	for col, header := range ds.Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, row := range ds.Rows {
		for col := range ds.Columns {
			if col >= len(row) || row[col] == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := file.SetCellValue(sheet, cell, row[col]); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
