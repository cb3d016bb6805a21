package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"tabload/config"
	"tabload/dataset"
	"tabload/loader"
)

// Shared load flags, registered on every command that reads a dataset.
var (
	loadSheet     string
	loadDelimiter string
	loadTable     string
	loadQuery     string
	loadBinding   string
	loadRows      int
)

func registerLoadFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&loadSheet, "sheet", "", "Excel sheet to read, by name or zero-based index")
	cmd.Flags().StringVar(&loadDelimiter, "delimiter", "", "Field separator override for delimited text files")
	cmd.Flags().StringVar(&loadTable, "table", "", "SQLite table to select from")
	cmd.Flags().StringVar(&loadQuery, "query", "", "SQL text to run against a SQLite source (overrides --table)")
	cmd.Flags().StringVar(&loadBinding, "binding", "", "RData binding to return")
	cmd.Flags().IntVar(&loadRows, "rows", 0, "Maximum rows to read from a Stata file (0 reads all)")
}

// buildOptions assembles loader options from command flags, with config
// values filling the gaps flags leave open.
func buildOptions(cfg *config.Config) loader.Options {
	opts := loader.Options{}
	if loadSheet != "" {
		// A numeric value selects by index, anything else by name.
		if index, err := strconv.Atoi(loadSheet); err == nil {
			opts["sheet"] = index
		} else {
			opts["sheet"] = loadSheet
		}
	}
	switch {
	case loadDelimiter != "":
		opts["delimiter"] = loadDelimiter
	case cfg.Load.Delimiter != "":
		opts["delimiter"] = cfg.Load.Delimiter
	}
	if loadTable != "" {
		opts["table"] = loadTable
	}
	if loadQuery != "" {
		opts["query"] = loadQuery
	}
	switch {
	case loadBinding != "":
		opts["binding"] = loadBinding
	case cfg.Load.RDataBinding != "":
		opts["binding"] = cfg.Load.RDataBinding
	}
	if loadRows > 0 {
		opts["rows"] = loadRows
	}
	return opts
}

// newLoader wires the project-root resolver from config into a Loader.
func newLoader(cfg *config.Config) *loader.Loader {
	l := loader.New()
	l.SetResolver(cfg.ResolveDataPath)
	return l
}

func loadDataset(path string) (*dataset.Dataset, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, err
	}
	// Loader errors already carry the resolved path; no extra context.
	return newLoader(cfg).Load(path, buildOptions(cfg))
}
