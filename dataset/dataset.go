package dataset

// Dataset is the tabular in-memory structure shared by all loaders and
// writers: named, positionally ordered columns over row-major cells.
// Cell values are whatever the source format yields (string, int64,
// float64, bool, or nil for missing values).
type Dataset struct {
	Columns []string
	Rows    [][]any
}

// New returns an empty Dataset with the given column names.
func New(columns ...string) *Dataset {
	return &Dataset{Columns: columns, Rows: make([][]any, 0, 128)}
}

func (d *Dataset) NumRows() int {
	return len(d.Rows)
}

func (d *Dataset) NumCols() int {
	return len(d.Columns)
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, column := range d.Columns {
		if column == name {
			return i
		}
	}
	return -1
}

// AppendRow adds a row, padding with nil or truncating so the row width
// always matches the column count.
func (d *Dataset) AppendRow(cells []any) {
	row := make([]any, len(d.Columns))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
	}
	d.Rows = append(d.Rows, row)
}

// Records returns the rows as column-name keyed maps. Rows shorter than
// the column list yield nil for the missing cells.
func (d *Dataset) Records() []map[string]any {
	records := make([]map[string]any, 0, len(d.Rows))
	for _, row := range d.Rows {
		record := make(map[string]any, len(d.Columns))
		for i, column := range d.Columns {
			if i < len(row) {
				record[column] = row[i]
			} else {
				record[column] = nil
			}
		}
		records = append(records, record)
	}
	return records
}
