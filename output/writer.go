package output

import (
	"fmt"
	"strconv"
	"strings"

	"tabload/dataset"
)

type Writer interface {
	Write(path string, ds *dataset.Dataset) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

// FormatCell renders a dataset cell as text. Floats use the shortest
// representation that round-trips; nil renders as the empty string.
func FormatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
