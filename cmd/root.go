/*
Copyright © 2026 The tabload authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tabload/config"
	"tabload/loader"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tabload",
	Short: "Load tabular dataset files of any supported format into one shape.",
	Long: `tabload reads a dataset file and presents it as rows of named columns,
inferring the parsing strategy from the file's extension.

Supported formats: ` + loader.SupportedFormats() + `.`,
	Example: `
  # Show dimensions and column names
  tabload info sales.csv

  # Print the first rows of a Stata file
  tabload head survey.dta -n 5

  # Load the Totals sheet of a workbook and export it as CSV
  tabload export report.xlsx --sheet Totals -o totals.csv

  # Load a specific table from a SQLite database
  tabload head metrics.db --table daily

  # Create a configuration file
  tabload config create
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.tabload.yaml, then ./.tabload.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".tabload" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tabload")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// A config file is optional; the defaults cover every setting.
	_ = viper.ReadInConfig()
}
