package loader

import (
	"path/filepath"
	"strings"
)

// Format identifies a supported dataset file format. Using an explicit
// variant type keeps the extension routing total: every Format constant
// has a reader registered in defaultReaders.
type Format string

const (
	FormatExcel  Format = "excel"
	FormatCSV    Format = "csv"
	FormatStata  Format = "stata"
	FormatRData  Format = "rdata"
	FormatJSON   Format = "json"
	FormatText   Format = "text"
	FormatSQLite Format = "sqlite"
)

// extensionFormats routes extension tags to formats. Matching is exact
// and case-sensitive: "RData" routes, "rdata" does not.
var extensionFormats = map[string]Format{
	"xlsx":   FormatExcel,
	"xls":    FormatExcel,
	"csv":    FormatCSV,
	"dta":    FormatStata,
	"RData":  FormatRData,
	"json":   FormatJSON,
	"txt":    FormatText,
	"text":   FormatText,
	"tsv":    FormatText,
	"sqlite": FormatSQLite,
	"db":     FormatSQLite,
}

// DetectFormat infers the dataset format from the path's extension tag.
func DetectFormat(path string) (Format, error) {
	tag := ExtensionTag(path)
	format, ok := extensionFormats[tag]
	if !ok {
		return "", &UnsupportedFormatError{Extension: tag}
	}
	return format, nil
}

// ExtensionTag returns the substring of the file name after the final
// period, or "" for extension-less paths.
func ExtensionTag(path string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i >= 0 {
		return base[i+1:]
	}
	return ""
}

// SupportedFormats describes every supported format family with its
// extension tags, in routing-table order. Used for error messages and
// CLI help.
func SupportedFormats() string {
	return "Excel (xlsx, xls), CSV (csv), Stata (dta), RData (RData), " +
		"JSON (json), tab-delimited text (txt, text, tsv), SQLite (sqlite, db)"
}
