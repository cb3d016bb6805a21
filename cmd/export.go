package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tabload/config"
	"tabload/output"
)

var (
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Load a dataset file and write it as CSV or Excel.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		ds, err := newLoader(cfg).Load(args[0], buildOptions(cfg))
		if err != nil {
			return err
		}

		format := resolveExportFormat(exportFormat, exportOutput, cfg.Export.Format)
		writer, err := output.WriterForFormat(format)
		if err != nil {
			return err
		}
		if err := writer.Write(exportOutput, ds); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows x %d columns to %s\n", ds.NumRows(), ds.NumCols(), exportOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	registerLoadFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "Output format: csv or excel (default: from output extension, then config)")
	_ = exportCmd.MarkFlagRequired("output")
}

// resolveExportFormat picks the output format: explicit flag first, then
// the output path's extension, then the configured default.
func resolveExportFormat(flagValue, outputPath, configDefault string) string {
	if flagValue != "" {
		return flagValue
	}
	if i := strings.LastIndexByte(outputPath, '.'); i >= 0 {
		switch strings.ToLower(outputPath[i+1:]) {
		case "csv":
			return "csv"
		case "xlsx":
			return "excel"
		}
	}
	if configDefault != "" {
		return configDefault
	}
	return "csv"
}
