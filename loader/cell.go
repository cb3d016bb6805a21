package loader

import "strconv"

// parseCell coerces a raw text cell from a delimited or spreadsheet
// source: integers, then floats, then booleans, otherwise the string
// unchanged. Empty cells become nil.
func parseCell(raw string) any {
	if raw == "" {
		return nil
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	return raw
}

// parseCells coerces a full row.
func parseCells(raw []string) []any {
	cells := make([]any, len(raw))
	for i, value := range raw {
		cells[i] = parseCell(value)
	}
	return cells
}
