package loader

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"tabload/dataset"
	"tabload/internal/rdata"
)

// DefaultRDataBinding is the binding name looked up when the binding
// option is absent. The original tooling this loader replaces always
// saved its frame under this name.
const DefaultRDataBinding = "dta"

// RDataReader parses R workspace files. Deserialized bindings are
// returned by the decoder as plain values, never injected into ambient
// state; the reader selects one binding and converts it to a Dataset.
type RDataReader struct{}

func (r *RDataReader) Read(path string, opts Options) (*dataset.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rdata file %s: %w", path, err)
	}
	defer file.Close()

	bindings, err := rdata.Decode(file)
	if err != nil {
		return nil, err
	}

	name := DefaultRDataBinding
	if binding, ok := opts.stringValue("binding"); ok {
		name = binding
	}
	value, ok := bindings[name]
	if !ok {
		return nil, fmt.Errorf("rdata file has no binding %q (available: %s)", name, bindingNames(bindings))
	}

	switch v := value.(type) {
	case *rdata.Frame:
		ds := dataset.New(v.Columns...)
		for row := 0; row < v.NumRows(); row++ {
			cells := make([]any, len(v.Data))
			for col := range v.Data {
				if row < len(v.Data[col]) {
					cells[col] = v.Data[col][row]
				}
			}
			ds.AppendRow(cells)
		}
		return ds, nil
	case []any:
		// A bare vector becomes a single-column dataset named after
		// its binding.
		ds := dataset.New(name)
		for _, cell := range v {
			ds.AppendRow([]any{cell})
		}
		return ds, nil
	default:
		return nil, fmt.Errorf("rdata binding %q is not tabular", name)
	}
}

func bindingNames(bindings map[string]any) string {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
