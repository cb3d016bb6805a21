package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tabload/dataset"
	"tabload/output"
)

var headRowCount int

var headCmd = &cobra.Command{
	Use:   "head <file>",
	Short: "Print the first rows of a dataset file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), renderTable(ds, headRowCount))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headCmd)
	registerLoadFlags(headCmd)
	headCmd.Flags().IntVarP(&headRowCount, "lines", "n", 10, "Number of rows to print")
}

func renderTable(ds *dataset.Dataset, limit int) string {
	var sb strings.Builder
	writer := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, strings.Join(ds.Columns, "\t"))
	for i, row := range ds.Rows {
		if limit >= 0 && i >= limit {
			break
		}
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = output.FormatCell(cell)
		}
		fmt.Fprintln(writer, strings.Join(cells, "\t"))
	}
	writer.Flush()

	if limit >= 0 && ds.NumRows() > limit {
		fmt.Fprintf(&sb, "... %d more rows\n", ds.NumRows()-limit)
	}
	return sb.String()
}
