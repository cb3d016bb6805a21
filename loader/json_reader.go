package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"tabload/dataset"
)

// JSONReader parses a JSON document holding an array of flat objects.
// Columns follow first-appearance order across records; records missing
// a key yield nil for that cell.
type JSONReader struct{}

func (r *JSONReader) Read(path string, opts Options) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open json file %s: %w", path, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber()

	if err := expectDelim(decoder, '['); err != nil {
		return nil, fmt.Errorf("json document must be an array of objects: %w", err)
	}

	columns := make([]string, 0, 8)
	seen := make(map[string]bool, 8)
	records := make([]map[string]any, 0, 128)
	for decoder.More() {
		if err := expectDelim(decoder, '{'); err != nil {
			return nil, fmt.Errorf("json record %d is not an object: %w", len(records)+1, err)
		}
		record := make(map[string]any, 8)
		for decoder.More() {
			keyToken, err := decoder.Token()
			if err != nil {
				return nil, fmt.Errorf("read json key in record %d: %w", len(records)+1, err)
			}
			key, ok := keyToken.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected json token %v in record %d", keyToken, len(records)+1)
			}
			var value any
			if err := decoder.Decode(&value); err != nil {
				return nil, fmt.Errorf("decode json value for %q in record %d: %w", key, len(records)+1, err)
			}
			record[key] = normalizeJSONValue(value)
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
		if _, err := decoder.Token(); err != nil {
			return nil, fmt.Errorf("read json record close: %w", err)
		}
		records = append(records, record)
	}
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("read json array close: %w", err)
	}

	ds := dataset.New(columns...)
	for _, record := range records {
		cells := make([]any, len(columns))
		for i, column := range columns {
			cells[i] = record[column]
		}
		ds.AppendRow(cells)
	}
	return ds, nil
}

func expectDelim(decoder *json.Decoder, want json.Delim) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	delim, ok := token.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, token)
	}
	return nil
}

// normalizeJSONValue converts json.Number cells to int64 when integral,
// float64 otherwise. Other values pass through as decoded.
func normalizeJSONValue(value any) any {
	number, ok := value.(json.Number)
	if !ok {
		return value
	}
	if v, err := number.Int64(); err == nil {
		return v
	}
	if v, err := number.Float64(); err == nil {
		return v
	}
	return number.String()
}
