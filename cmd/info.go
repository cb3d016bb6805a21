package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show the dimensions and column names of a dataset file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows x %d columns\n", args[0], ds.NumRows(), ds.NumCols())
		fmt.Fprintf(cmd.OutOrStdout(), "columns: %s\n", strings.Join(ds.Columns, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	registerLoadFlags(infoCmd)
}
