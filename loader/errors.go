package loader

import (
	"fmt"
	"strings"
)

// UnsupportedFormatError reports an extension tag outside the routing
// table. The message enumerates the supported format families.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("path has no file extension; supported formats: %s", SupportedFormats())
	}
	return fmt.Sprintf("unsupported dataset format %q; supported formats: %s", e.Extension, SupportedFormats())
}

// LoadError wraps any failure raised by a format reader, carrying the
// file path alongside the underlying cause. Nothing is retried or
// recovered: a load either fully succeeds or surfaces one of these.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// AmbiguousSchemaError reports a SQLite source whose table could not be
// chosen automatically: either no user tables exist, or more than one
// does and neither a table nor a query option was supplied.
type AmbiguousSchemaError struct {
	Path   string
	Tables []string
}

func (e *AmbiguousSchemaError) Error() string {
	if len(e.Tables) == 0 {
		return fmt.Sprintf("database %s contains no tables", e.Path)
	}
	return fmt.Sprintf(
		"database %s contains %d tables (%s); select one with the table or query option",
		e.Path, len(e.Tables), strings.Join(e.Tables, ", "),
	)
}
