package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tabload/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the tabload configuration file.",
}

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a configuration file from the example template.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig(cmd)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "config file: %s\n", used)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "config file: (none, defaults in effect)")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "project.root: %q\n", cfg.Project.Root)
		fmt.Fprintf(cmd.OutOrStdout(), "load.rdata_binding: %q\n", cfg.Load.RDataBinding)
		fmt.Fprintf(cmd.OutOrStdout(), "load.delimiter: %q\n", cfg.Load.Delimiter)
		fmt.Fprintf(cmd.OutOrStdout(), "export.format: %q\n", cfg.Export.Format)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCreateCmd)
	configCmd.AddCommand(configShowCmd)
}

func saveDefaultConfig(cmd *cobra.Command) error {
	configPath, err := defaultConfigPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Config file already exists at: %s\n", configPath)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check config file %s: %w", configPath, err)
	}

	if err := os.WriteFile(configPath, []byte(config.ExampleYAML()), 0o644); err != nil {
		return fmt.Errorf("write config file %s: %w", configPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "New config file created at: %s\n", configPath)
	return nil
}

// defaultConfigPath prefers the explicit override, then the discovered
// file, then $HOME/.tabload.yaml.
func defaultConfigPath(override, discovered string) (string, error) {
	if override != "" {
		return override, nil
	}
	if discovered != "" {
		return discovered, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".tabload.yaml"), nil
}
