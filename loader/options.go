package loader

// Options carries format-specific reader parameters. The dispatcher
// forwards the mapping verbatim; only the selected reader interprets
// entries. Documented keys:
//
//	sheet     Excel: sheet name (string) or zero-based index (int)
//	delimiter CSV/text: single-character field separator override
//	rows      Stata: maximum number of rows to read
//	binding   RData: name of the binding to return (default "dta")
//	table     SQLite: table to select from
//	query     SQLite: full SQL text, takes precedence over table
type Options map[string]any

func (o Options) stringValue(key string) (string, bool) {
	value, ok := o[key]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (o Options) intValue(key string) (int, bool) {
	switch value := o[key].(type) {
	case int:
		return value, true
	case int64:
		return int(value), true
	case float64:
		return int(value), true
	default:
		return 0, false
	}
}
